package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Period{Month: 1, Year: 2025}.Validate())
	assert.NoError(t, Period{Month: 12, Year: 2025}.Validate())
	assert.ErrorIs(t, Period{Month: 0, Year: 2025}.Validate(), ErrInvalidPeriod)
	assert.ErrorIs(t, Period{Month: 13, Year: 2025}.Validate(), ErrInvalidPeriod)
	assert.ErrorIs(t, Period{Month: 3, Year: 0}.Validate(), ErrInvalidPeriod)
}

func TestContains(t *testing.T) {
	p := Period{Month: 3, Year: 2025}
	assert.True(t, p.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
}

func TestParseReportDate(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{"2025-03-04", true, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"2025-03-04T10:15:00", true, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"2025-03-04 10:15", true, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"yesterday", false, time.Time{}},
		{"2025-3-4", false, time.Time{}},
		{"2025-13-40T00:00:00", false, time.Time{}},
	}

	for _, tc := range cases {
		got, ok := ParseReportDate(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		if tc.ok {
			assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
		}
	}
}
