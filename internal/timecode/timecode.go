// Package timecode converts between audio sample offsets and the
// fixed-width "HH:MM:SS.fffffffff" strings used by Matroska chapter
// files. Conversions round half up, so a format/parse round-trip at the
// same sample rate reproduces the original sample count exactly.
package timecode

import (
	"fmt"
	"regexp"
	"strconv"
)

// NanosPerSecond is the resolution of the nanosecond chapter encoding.
// Parsing a nine-digit timecode at this rate yields nanoseconds directly.
const NanosPerSecond = 1_000_000_000

// LegacyRate is the only sample rate at which the legacy millisecond
// chapter format is valid. The format carries no rate of its own.
const LegacyRate = 44100

var (
	nanoPattern  = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})\.(\d{9})$`)
	milliPattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})\.(\d{3})$`)
)

// ParseError reports a timecode string that does not match the expected
// fixed-width layout.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed timecode %q", e.Input)
}

// Format renders a sample offset at the given rate as a zero-padded
// timecode with nine fractional digits.
func Format(samples int64, sampleRate int) string {
	rate := int64(sampleRate)
	hours := samples / (rate * 3600)
	rem := samples - hours*rate*3600
	minutes := rem / (rate * 60)
	rem -= minutes * rate * 60
	seconds := rem / rate
	rem -= seconds * rate
	nanos := divRound(rem*NanosPerSecond, rate)
	return fmt.Sprintf("%02d:%02d:%02d.%09d", hours, minutes, seconds, nanos)
}

// Parse is the inverse of Format. It rejects anything that is not
// exactly HH:MM:SS followed by nine fractional digits.
func Parse(tc string, sampleRate int) (int64, error) {
	m := nanoPattern.FindStringSubmatch(tc)
	if m == nil {
		return 0, &ParseError{Input: tc}
	}
	hours, minutes, seconds, nanos := fields(m)
	rate := int64(sampleRate)
	whole := (hours*3600 + minutes*60 + seconds) * rate
	return whole + divRound(nanos*rate, NanosPerSecond), nil
}

// FormatLegacy renders a sample offset in the legacy millisecond layout,
// assuming the fixed 44100 Hz rate of that format.
func FormatLegacy(samples int64) string {
	const rate = int64(LegacyRate)
	hours := samples / (rate * 3600)
	rem := samples - hours*rate*3600
	minutes := rem / (rate * 60)
	rem -= minutes * rate * 60
	seconds := rem / rate
	rem -= seconds * rate
	millis := divRound(rem*1000, rate)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// ParseLegacy is the inverse of FormatLegacy, again fixed at 44100 Hz.
func ParseLegacy(tc string) (int64, error) {
	m := milliPattern.FindStringSubmatch(tc)
	if m == nil {
		return 0, &ParseError{Input: tc}
	}
	hours, minutes, seconds, millis := fields(m)
	const rate = int64(LegacyRate)
	whole := (hours*3600 + minutes*60 + seconds) * rate
	return whole + divRound(millis*rate, 1000), nil
}

func fields(m []string) (hours, minutes, seconds, frac int64) {
	// The pattern guarantees pure digit groups.
	hours, _ = strconv.ParseInt(m[1], 10, 64)
	minutes, _ = strconv.ParseInt(m[2], 10, 64)
	seconds, _ = strconv.ParseInt(m[3], 10, 64)
	frac, _ = strconv.ParseInt(m[4], 10, 64)
	return hours, minutes, seconds, frac
}

// divRound divides non-negative integers, rounding half up.
func divRound(n, d int64) int64 {
	return (n + d/2) / d
}
