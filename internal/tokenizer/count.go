package tokenizer

import "errors"

var errNilCounter = errors.New("tokenizer counter is nil")

// Tally accumulates token counts over the files of one run.
// It is not safe for concurrent use.
type Tally struct {
	counter Counter
	total   int
	counted int
}

// NewTally returns an empty Tally backed by counter.
func NewTally(counter Counter) *Tally {
	return &Tally{counter: counter}
}

// Add counts text and adds it to the running total.
func (tally *Tally) Add(text string) error {
	if tally.counter == nil {
		return errNilCounter
	}
	tokens, err := tally.counter.CountString(text)
	if err != nil {
		return err
	}
	tally.total += tokens
	tally.counted++
	return nil
}

// Total returns the tokens counted so far.
func (tally *Tally) Total() int {
	return tally.total
}

// Counted returns how many texts contributed to Total.
func (tally *Tally) Counted() int {
	return tally.counted
}
