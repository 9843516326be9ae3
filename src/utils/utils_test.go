package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"report seconds", "2023.01.02 10:00:00", time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)},
		{"report minutes", "2023.01.02 10:05", time.Date(2023, 1, 2, 10, 5, 0, 0, time.UTC)},
		{"report date", "2023.01.02", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"padded", "  2023.01.02 10:00:00 ", time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)},
		{"iso", "2023-01-02 10:00:00", time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)},
		{"rfc3339", "2023-01-02T10:00:00Z", time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date"} {
		_, err := ParseTimestamp(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestIsMissingTimestamp(t *testing.T) {
	for _, in := range []string{"", "   ", "NaT", "nat", " NaN "} {
		assert.True(t, IsMissingTimestamp(in), "input %q", in)
	}
	for _, in := range []string{"2023.01.02", "not a date", "0"} {
		assert.False(t, IsMissingTimestamp(in), "input %q", in)
	}
}

func TestParseFloat(t *testing.T) {
	v, err := ParseFloat(" 1.07500 ")
	require.NoError(t, err)
	assert.Equal(t, 1.075, v)

	_, err = ParseFloat("n/a")
	assert.Error(t, err)

	_, err = ParseFloat("")
	assert.Error(t, err)
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 66.67, RoundFloat(66.6666, 2))
	assert.Equal(t, 0.0, RoundFloat(0.0001, 2))
}
