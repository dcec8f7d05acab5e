package utils

import (
	"strconv"
	"strings"
)

const sizeStep = 1024

var sizeUnits = [...]string{"kb", "mb", "gb", "tb", "pb"}

// FormatFileSize renders a byte count for the completion summary: whole
// bytes below one kilobyte, one decimal below ten of a unit, whole units above.
func FormatFileSize(byteCount int64) string {
	if byteCount < sizeStep {
		return strconv.FormatInt(max(byteCount, 0), 10) + "b"
	}
	scaled := float64(byteCount) / sizeStep
	unit := 0
	for scaled >= sizeStep && unit < len(sizeUnits)-1 {
		scaled /= sizeStep
		unit++
	}
	precision := 0
	if scaled < 10 {
		precision = 1
	}
	return strings.TrimSuffix(strconv.FormatFloat(scaled, 'f', precision, 64), ".0") + sizeUnits[unit]
}
