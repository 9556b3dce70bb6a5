package reconcile

import "time"

// JobEffectiveDate resolves the single date that assigns a whole job to a
// month. Priority: actual start of the first application in store order that
// has one, then scheduled start of the first application that has one, then
// the period end of a flexible job, then the nominal end.
//
// The first-application tie-break is order-dependent: when several
// applications carry different dates, one worker's date represents the whole
// job. The store defines the order; callers must not re-sort applications.
func JobEffectiveDate(record WorkRecord) (time.Time, error) {
	for _, app := range record.Applications {
		if app.ActualStart != nil {
			return *app.ActualStart, nil
		}
	}
	for _, app := range record.Applications {
		if app.ScheduledStart != nil {
			return *app.ScheduledStart, nil
		}
	}
	return jobFallbackDate(record)
}

// ApplicationEffectiveDate resolves the date for one specific application of
// a job. Unlike JobEffectiveDate it only ever looks at the given
// application's own dates before falling back to the job.
func ApplicationEffectiveDate(record WorkRecord, app ApplicationRecord) (time.Time, error) {
	if app.ActualStart != nil {
		return *app.ActualStart, nil
	}
	if app.ScheduledStart != nil {
		return *app.ScheduledStart, nil
	}
	return jobFallbackDate(record)
}

func jobFallbackDate(record WorkRecord) (time.Time, error) {
	if record.IsFlexible && record.PeriodEnd != nil {
		return *record.PeriodEnd, nil
	}
	if record.NominalEnd.IsZero() {
		return time.Time{}, ErrMissingNominalEnd
	}
	return record.NominalEnd, nil
}
