package reconcile

import "time"

// MonthlyWindow is the precise span of one report month plus the widened
// bounds used for the initial broad fetch. The wide bounds exist only because
// the store's indexed date can differ from the resolved effective date by up
// to one month; inclusion decisions always use Start/End.
type MonthlyWindow struct {
	Start     time.Time
	End       time.Time
	WideStart time.Time
	WideEnd   time.Time
}

// NewMonthlyWindow builds the window for a (year, month) pair.
func NewMonthlyWindow(year int, month time.Month) (MonthlyWindow, error) {
	if year < 2000 || year > 2100 {
		return MonthlyWindow{}, ErrInvalidMonth
	}
	if month < time.January || month > time.December {
		return MonthlyWindow{}, ErrInvalidMonth
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return MonthlyWindow{
		Start:     start,
		End:       start.AddDate(0, 1, 0).Add(-time.Nanosecond),
		WideStart: start.AddDate(0, -1, 0),
		WideEnd:   start.AddDate(0, 2, 0).Add(-time.Nanosecond),
	}, nil
}

// ParseMonth builds a window from a YYYY-MM string.
func ParseMonth(month string) (MonthlyWindow, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return MonthlyWindow{}, ErrInvalidMonth
	}
	return NewMonthlyWindow(t.Year(), t.Month())
}

// Contains reports whether t falls inside the precise month span.
func (w MonthlyWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Label returns the YYYY-MM form used in export filenames.
func (w MonthlyWindow) Label() string {
	return w.Start.Format("2006-01")
}
