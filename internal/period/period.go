package period

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid_period")

// Period is a calendar month used as the aggregation window for targets,
// achievements and visit activity.
type Period struct {
	Month int `json:"month" form:"month"`
	Year  int `json:"year" form:"year"`
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidPeriod
	}
	if p.Year < 2000 || p.Year > 2200 {
		return ErrInvalidPeriod
	}
	return nil
}

func (p Period) Contains(t time.Time) bool {
	return int(t.Month()) == p.Month && t.Year() == p.Year
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// ParseReportDate extracts the date component from a field-report timestamp.
// Reports arrive from mobile devices with inconsistent suffixes ("2025-03-04",
// "2025-03-04T10:15:00", "2025-03-04 10:15"), so only the leading date is
// considered. Missing or malformed input yields ok=false, never an error;
// such reports are excluded from period matching.
func ParseReportDate(raw string) (time.Time, bool) {
	if len(raw) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
