package tokenizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runeCounter struct {
	err error
}

func (runeCounter) Name() string { return "runes" }

func (counter runeCounter) CountString(input string) (int, error) {
	if counter.err != nil {
		return 0, counter.err
	}
	return len([]rune(input)), nil
}

func TestTallyAccumulates(t *testing.T) {
	tally := NewTally(runeCounter{})
	require.NoError(t, tally.Add("abc"))
	require.NoError(t, tally.Add("de"))
	assert.Equal(t, 5, tally.Total())
	assert.Equal(t, 2, tally.Counted())
}

func TestTallyKeepsTotalOnFailure(t *testing.T) {
	tally := NewTally(runeCounter{err: errors.New("boom")})
	assert.Error(t, tally.Add("abc"))
	assert.Zero(t, tally.Total())

	assert.Error(t, NewTally(nil).Add("abc"))
}

func TestNewCounterKnownModel(t *testing.T) {
	counter, model, err := NewCounter(Config{Model: " GPT-4o "})
	require.NoError(t, err)
	assert.Equal(t, "GPT-4o", model)
	assert.Equal(t, "gpt-4o", counter.Name())

	tokens, err := counter.CountString("hello world")
	require.NoError(t, err)
	assert.Positive(t, tokens)
}

func TestNewCounterDefaultsModel(t *testing.T) {
	_, model, err := NewCounter(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, model)
}

func TestNewCounterUnknownModelFallsBack(t *testing.T) {
	counter, model, err := NewCounter(Config{Model: "claude-3-opus"})
	require.NoError(t, err)
	assert.Equal(t, defaultEncodingName, model)
	assert.Equal(t, defaultEncodingName, counter.Name())
}

func TestEncodingCounterWithoutEncoding(t *testing.T) {
	_, err := encodingCounter{name: "empty"}.CountString("x")
	assert.Error(t, err)
}
