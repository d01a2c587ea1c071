// Package timecode converts between the wire/display timestamp form
// "HH:MM:SS,mmm" and floating-point seconds. The comma decimal separator
// matches the SRT-style timestamps the tag gateway and the analyzer output
// both use.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders a seconds offset as "HH:MM:SS,mmm". Hours are zero-padded
// to at least two digits and may grow beyond two for very long media.
// Negative or non-finite input clamps to "00:00:00,000".
func Format(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}

	whole := math.Floor(seconds)
	millis := int(math.Floor(1000 * (seconds - whole)))
	secs := int(whole) % 60
	minutes := (int(whole) / 60) % 60
	hours := int(whole) / 3600

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Parse converts a timestamp string back to seconds. Segments split on ":",
// the last segment's comma is treated as a decimal separator, and missing
// minute/hour fields default to zero ("7,5" and "1:07,5" are both valid).
// Malformed input returns NaN rather than an error: callers feeding
// partially-typed edit-dialog text must be able to probe input cheaply.
func Parse(text string) float64 {
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return math.NaN()
	}

	last := strings.Replace(parts[len(parts)-1], ",", ".", 1)
	seconds, err := strconv.ParseFloat(strings.TrimSpace(last), 64)
	if err != nil {
		return math.NaN()
	}

	var minutes, hours float64
	if len(parts) > 1 {
		minutes, err = strconv.ParseFloat(strings.TrimSpace(parts[len(parts)-2]), 64)
		if err != nil {
			return math.NaN()
		}
	}
	if len(parts) > 2 {
		hours, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return math.NaN()
		}
	}

	return seconds + minutes*60 + hours*3600
}

// Valid reports whether text parses to a usable (finite, non-negative)
// seconds offset.
func Valid(text string) bool {
	s := Parse(text)
	return !math.IsNaN(s) && !math.IsInf(s, 0) && s >= 0
}
