package reconcile

import (
	"errors"
	"testing"
	"time"
)

func tp(t time.Time) *time.Time { return &t }

func TestJobEffectiveDate_FirstActualStartWins(t *testing.T) {
	first := time.Date(2024, 6, 25, 9, 0, 0, 0, time.UTC)
	second := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	record := WorkRecord{
		Status:     WorkStatusCompleted,
		NominalEnd: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		Applications: []ApplicationRecord{
			{WorkerID: "w-1", ActualStart: tp(first)},
			{WorkerID: "w-2", ActualStart: tp(second)},
		},
	}
	got, err := JobEffectiveDate(record)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// Store order decides, not the earliest date.
	if !got.Equal(first) {
		t.Fatalf("expected %v, got %v", first, got)
	}
}

func TestJobEffectiveDate_ActualBeatsScheduledAcrossApplications(t *testing.T) {
	scheduled := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	actual := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	record := WorkRecord{
		NominalEnd: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Applications: []ApplicationRecord{
			{WorkerID: "w-1", ScheduledStart: tp(scheduled)},
			{WorkerID: "w-2", ActualStart: tp(actual)},
		},
	}
	got, err := JobEffectiveDate(record)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !got.Equal(actual) {
		t.Fatalf("expected actual start %v, got %v", actual, got)
	}
}

func TestJobEffectiveDate_FlexiblePeriodEndFallback(t *testing.T) {
	periodEnd := time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)
	record := WorkRecord{
		IsFlexible: true,
		NominalEnd: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		PeriodEnd:  tp(periodEnd),
	}
	got, err := JobEffectiveDate(record)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !got.Equal(periodEnd) {
		t.Fatalf("expected period end %v, got %v", periodEnd, got)
	}
}

func TestJobEffectiveDate_NominalEndFallbackNeverDrops(t *testing.T) {
	nominal := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	record := WorkRecord{
		IsFlexible:   false,
		NominalEnd:   nominal,
		Applications: []ApplicationRecord{{WorkerID: "w-1"}},
	}
	got, err := JobEffectiveDate(record)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !got.Equal(nominal) {
		t.Fatalf("expected nominal end %v, got %v", nominal, got)
	}
}

func TestJobEffectiveDate_MissingNominalEnd(t *testing.T) {
	_, err := JobEffectiveDate(WorkRecord{})
	if !errors.Is(err, ErrMissingNominalEnd) {
		t.Fatalf("expected ErrMissingNominalEnd, got %v", err)
	}
}

func TestApplicationEffectiveDate_OwnDatesOnly(t *testing.T) {
	otherActual := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ownScheduled := time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC)
	record := WorkRecord{
		NominalEnd: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Applications: []ApplicationRecord{
			{WorkerID: "w-1", ActualStart: tp(otherActual)},
			{WorkerID: "w-2", ScheduledStart: tp(ownScheduled)},
		},
	}
	got, err := ApplicationEffectiveDate(record, record.Applications[1])
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// Sibling applications must not leak their dates into this one.
	if !got.Equal(ownScheduled) {
		t.Fatalf("expected %v, got %v", ownScheduled, got)
	}
}

func TestApplicationEffectiveDate_JobFallback(t *testing.T) {
	nominal := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	record := WorkRecord{
		NominalEnd:   nominal,
		Applications: []ApplicationRecord{{WorkerID: "w-1"}},
	}
	got, err := ApplicationEffectiveDate(record, record.Applications[0])
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !got.Equal(nominal) {
		t.Fatalf("expected nominal end %v, got %v", nominal, got)
	}
}
