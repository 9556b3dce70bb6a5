package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gigledger/internal/observability/metrics"
	reconcile "gigledger/internal/reconcile/domain"
)

// indexedEndExpr is the only indexed date the store can filter on; it may
// differ from the resolved effective date by up to one month, which is why
// callers fetch with widened bounds.
const indexedEndExpr = `(CASE WHEN j.is_flexible AND j.period_end IS NOT NULL THEN j.period_end ELSE j.nominal_end END)`

// RecordStore reads work and contract records from Postgres.
type RecordStore struct {
	db *sql.DB
}

// NewRecordStore constructs a store.
func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

// FetchCompletedWork returns completed jobs indexed inside the wide bounds,
// with applications attached in id order. Counterparty and worker names are
// left joins; a missing row becomes an empty string rather than an error.
func (s *RecordStore) FetchCompletedWork(ctx context.Context, wideStart, wideEnd time.Time) ([]reconcile.WorkRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("record store: nil db")
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT j.id, j.counterparty_id, COALESCE(c.name, ''), j.title, j.amount,
	j.status, j.is_flexible, j.nominal_end, j.period_end
FROM jobs j
LEFT JOIN counterparties c ON c.id = j.counterparty_id
WHERE j.status = 'COMPLETED'
	AND `+indexedEndExpr+` BETWEEN $1 AND $2
ORDER BY j.nominal_end ASC, j.id ASC`, wideStart, wideEnd)
	if err != nil {
		metrics.IncStoreFetchError("work")
		return nil, err
	}
	defer rows.Close()

	var records []reconcile.WorkRecord
	index := make(map[string]int)
	for rows.Next() {
		var record reconcile.WorkRecord
		var counterpartyID sql.NullString
		var periodEnd sql.NullTime
		if err := rows.Scan(&record.JobID, &counterpartyID, &record.CounterpartyName, &record.Title,
			&record.Amount, &record.Status, &record.IsFlexible, &record.NominalEnd, &periodEnd); err != nil {
			return nil, err
		}
		record.CounterpartyID = counterpartyID.String
		if periodEnd.Valid {
			end := periodEnd.Time
			record.PeriodEnd = &end
		}
		index[record.JobID] = len(records)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	if err := s.attachApplications(ctx, wideStart, wideEnd, records, index); err != nil {
		return nil, err
	}
	return records, nil
}

// attachApplications loads the applications of the fetched jobs, reusing the
// job filter so both queries see the same record set.
func (s *RecordStore) attachApplications(ctx context.Context, wideStart, wideEnd time.Time, records []reconcile.WorkRecord, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
SELECT a.job_id, a.worker_id, COALESCE(w.name, ''), a.status, a.actual_start, a.scheduled_start
FROM job_applications a
JOIN jobs j ON j.id = a.job_id
LEFT JOIN workers w ON w.id = a.worker_id
WHERE j.status = 'COMPLETED'
	AND `+indexedEndExpr+` BETWEEN $1 AND $2
ORDER BY a.id ASC`, wideStart, wideEnd)
	if err != nil {
		metrics.IncStoreFetchError("applications")
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID string
		var app reconcile.ApplicationRecord
		var actualStart, scheduledStart sql.NullTime
		if err := rows.Scan(&jobID, &app.WorkerID, &app.WorkerName, &app.Status, &actualStart, &scheduledStart); err != nil {
			return err
		}
		if actualStart.Valid {
			t := actualStart.Time
			app.ActualStart = &t
		}
		if scheduledStart.Valid {
			t := scheduledStart.Time
			app.ScheduledStart = &t
		}
		i, ok := index[jobID]
		if !ok {
			continue
		}
		records[i].Applications = append(records[i].Applications, app)
	}
	return rows.Err()
}

// FetchContracts returns contracts of one direction filtered server-side by
// the active-span predicate. ONCE contracts are narrowed further by the
// engine, never here.
func (s *RecordStore) FetchContracts(ctx context.Context, direction reconcile.Direction, windowEnd, windowStart time.Time) ([]reconcile.ContractRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("record store: nil db")
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT c.id, c.counterparty_id, COALESCE(p.name, ''), c.title, c.direction,
	c.billing_cycle, c.amount, c.start_date, c.end_date
FROM contracts c
LEFT JOIN counterparties p ON p.id = c.counterparty_id
WHERE c.direction = $1
	AND c.start_date <= $2
	AND (c.end_date IS NULL OR c.end_date >= $3)
ORDER BY c.start_date ASC, c.id ASC`, string(direction), windowEnd, windowStart)
	if err != nil {
		metrics.IncStoreFetchError("contracts")
		return nil, err
	}
	defer rows.Close()

	var contracts []reconcile.ContractRecord
	for rows.Next() {
		var contract reconcile.ContractRecord
		var direction, cycle string
		var endDate sql.NullTime
		if err := rows.Scan(&contract.ContractID, &contract.CounterpartyID, &contract.CounterpartyName,
			&contract.Title, &direction, &cycle, &contract.Amount, &contract.StartDate, &endDate); err != nil {
			return nil, err
		}
		contract.Direction = reconcile.Direction(direction)
		contract.BillingCycle = reconcile.BillingCycle(cycle)
		if endDate.Valid {
			end := endDate.Time
			contract.EndDate = &end
		}
		contracts = append(contracts, contract)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contracts, nil
}
