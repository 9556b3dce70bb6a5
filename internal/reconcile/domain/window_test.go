package reconcile

import (
	"errors"
	"testing"
	"time"
)

func TestNewMonthlyWindow_Bounds(t *testing.T) {
	w, err := NewMonthlyWindow(2024, time.June)
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	if !w.Start.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", w.Start)
	}
	if !w.Contains(time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("last day must be inside the window")
	}
	if w.Contains(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("next month must be outside the window")
	}
	if !w.WideStart.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected wide start %v", w.WideStart)
	}
	if w.WideEnd.Before(time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("wide end must cover the following month, got %v", w.WideEnd)
	}
}

func TestNewMonthlyWindow_YearBoundary(t *testing.T) {
	w, err := NewMonthlyWindow(2024, time.January)
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	if !w.WideStart.Equal(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("wide start must roll into the previous year, got %v", w.WideStart)
	}
}

func TestParseMonth(t *testing.T) {
	w, err := ParseMonth("2024-06")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	if w.Label() != "2024-06" {
		t.Fatalf("expected label 2024-06, got %s", w.Label())
	}
	for _, bad := range []string{"", "2024", "2024-13", "June 2024"} {
		if _, err := ParseMonth(bad); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("ParseMonth(%q): expected ErrInvalidMonth, got %v", bad, err)
		}
	}
}

func TestBucketTotalDerived(t *testing.T) {
	b := AggregateBucket{JobSubtotal: 1200, ContractSubtotal: 345}
	if b.Total() != 1545 {
		t.Fatalf("expected 1545, got %d", b.Total())
	}
}

func TestContractContributesTo(t *testing.T) {
	w, err := NewMonthlyWindow(2024, time.June)
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	once := ContractRecord{
		BillingCycle: CycleOnce,
		StartDate:    time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
	}
	if once.ContributesTo(w) {
		t.Fatalf("ONCE contract starting the day before the window must be excluded")
	}
	once.StartDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !once.ContributesTo(w) {
		t.Fatalf("ONCE contract starting inside the window must be included")
	}

	monthly := ContractRecord{
		BillingCycle: CycleMonthly,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if !monthly.ContributesTo(w) {
		t.Fatalf("open-ended monthly contract must be active")
	}
	ended := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	monthly.EndDate = &ended
	if monthly.ContributesTo(w) {
		t.Fatalf("contract ended before the window must be excluded")
	}
}
