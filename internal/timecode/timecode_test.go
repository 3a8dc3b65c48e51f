package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		samples  int64
		rate     int
		expected string
	}{
		{
			name:     "zero",
			samples:  0,
			rate:     44100,
			expected: "00:00:00.000000000",
		},
		{
			name:     "thirty seconds",
			samples:  1_323_000,
			rate:     44100,
			expected: "00:00:30.000000000",
		},
		{
			name:     "one minute",
			samples:  2_646_000,
			rate:     44100,
			expected: "00:01:00.000000000",
		},
		{
			name:     "over an hour",
			samples:  44100 * 3725,
			rate:     44100,
			expected: "01:02:05.000000000",
		},
		{
			name:     "single sample fraction",
			samples:  1,
			rate:     44100,
			expected: "00:00:00.000022676",
		},
		{
			name:     "different rate",
			samples:  96000 + 48000,
			rate:     96000,
			expected: "00:00:01.500000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.samples, tt.rate))
		})
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		tc   string
	}{
		{name: "empty", tc: ""},
		{name: "single digit hours", tc: "1:00:00.000000000"},
		{name: "millisecond fraction", tc: "00:00:00.000"},
		{name: "ten fractional digits", tc: "00:00:00.0000000000"},
		{name: "missing fraction", tc: "00:00:00"},
		{name: "letters", tc: "aa:bb:cc.ddddddddd"},
		{name: "trailing garbage", tc: "00:00:00.000000000x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.tc, 44100)
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

// Round-half-up is the documented rounding rule for both directions, so
// format→parse at the same rate is lossless for every sample count.
func TestRoundTrip(t *testing.T) {
	rates := []int{44100, 48000, 96000, 8000}
	samples := []int64{0, 1, 2, 587, 588, 44099, 44100, 44101, 1_323_000, 123_456_789}

	for _, rate := range rates {
		for _, n := range samples {
			tc := Format(n, rate)
			got, err := Parse(tc, rate)
			require.NoError(t, err)
			assert.Equal(t, n, got, "rate %d samples %d (%s)", rate, n, tc)

			// Repeated cycles must be idempotent after the first.
			assert.Equal(t, tc, Format(got, rate))
		}
	}
}

func TestParseNanosecondDomain(t *testing.T) {
	// Parsing at the nanosecond rate reads the fraction digits verbatim.
	ns, err := Parse("00:00:01.000000001", NanosPerSecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_001), ns)
}

func TestLegacyRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		samples  int64
		expected string
	}{
		{name: "zero", samples: 0, expected: "00:00:00.000"},
		{name: "thirty seconds", samples: 1_323_000, expected: "00:00:30.000"},
		{name: "sub-millisecond rounds", samples: 44, expected: "00:00:00.001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := FormatLegacy(tt.samples)
			assert.Equal(t, tt.expected, tc)

			got, err := ParseLegacy(tc)
			require.NoError(t, err)
			// Millisecond precision loses at most half a millisecond
			// of samples (22 at 44100 Hz).
			assert.InDelta(t, tt.samples, got, 23)

			// Idempotent after the first cycle.
			assert.Equal(t, tc, FormatLegacy(got))
		})
	}
}

func TestLegacyParseRejectsNanosecondLayout(t *testing.T) {
	_, err := ParseLegacy("00:00:00.000000000")
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
