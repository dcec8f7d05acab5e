package utils

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// TextEncodingName names the only encoding accepted for collected files.
const TextEncodingName = "utf-8"

// ErrInvalidText reports content that does not decode under TextEncodingName.
var ErrInvalidText = errors.New("content is not valid " + TextEncodingName)

// DecodeText converts data to a string, failing with ErrInvalidText at the
// first byte offset that is not valid UTF-8.
func DecodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	offset := 0
	for offset < len(data) {
		decodedRune, runeWidth := utf8.DecodeRune(data[offset:])
		if decodedRune == utf8.RuneError && runeWidth == 1 {
			break
		}
		offset += runeWidth
	}
	return "", fmt.Errorf("%w: invalid byte 0x%02x at offset %d", ErrInvalidText, data[offset], offset)
}
