package application

import (
	"context"
	"fmt"
	"time"

	"gigledger/internal/observability/metrics"
	reconcile "gigledger/internal/reconcile/domain"
)

// Engine folds work records and contract records into per-counterparty
// buckets for one month and report kind. It is stateless and read-only:
// every call fetches and recomputes from scratch, holds no cache, and never
// writes to the store, so concurrent invocations need no locking.
type Engine struct {
	store reconcile.RecordStore
}

// NewEngine constructs an engine over a record store.
func NewEngine(store reconcile.RecordStore) (*Engine, error) {
	if store == nil {
		return nil, reconcile.ErrNilStore
	}
	return &Engine{store: store}, nil
}

// Summarize returns one bucket per counterparty in store-return order.
func (e *Engine) Summarize(ctx context.Context, window reconcile.MonthlyWindow, kind ReportKind) ([]reconcile.AggregateBucket, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportGenerate(string(kind), result, time.Since(start))
	}()

	buckets, _, err := e.aggregate(ctx, window, kind, "")
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return buckets, nil
}

// Detail returns the ordered line items for one counterparty. The sum of the
// returned amounts reconciles exactly with the counterparty's summary
// subtotals, because both passes run the same inclusion logic.
func (e *Engine) Detail(ctx context.Context, window reconcile.MonthlyWindow, kind ReportKind, counterpartyID string) ([]reconcile.LineItem, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportDetail(string(kind), result, time.Since(start))
	}()

	_, items, err := e.aggregate(ctx, window, kind, counterpartyID)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return items, nil
}

// aggregate runs the two-stage pipeline: broad fetch with the wide bounds,
// then in-process precise filtering. With a non-empty onlyID it additionally
// collects line items restricted to that counterparty.
func (e *Engine) aggregate(ctx context.Context, window reconcile.MonthlyWindow, kind ReportKind, onlyID string) ([]reconcile.AggregateBucket, []reconcile.LineItem, error) {
	if _, err := ParseReportKind(string(kind)); err != nil {
		return nil, nil, err
	}

	work, err := e.store.FetchCompletedWork(ctx, window.WideStart, window.WideEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("reconcile engine: fetch completed work: %w", err)
	}
	contracts, err := e.store.FetchContracts(ctx, kind.Direction(), window.End, window.Start)
	if err != nil {
		return nil, nil, fmt.Errorf("reconcile engine: fetch contracts: %w", err)
	}

	acc := newAccumulator(onlyID)
	dimension := kind.Dimension()

	for _, record := range work {
		if !record.Eligible() {
			continue
		}
		if dimension == DimensionWorker {
			for _, app := range record.Applications {
				date, err := reconcile.ApplicationEffectiveDate(record, app)
				if err != nil {
					continue // shape violation: tolerated, never aborts
				}
				if !window.Contains(date) {
					continue
				}
				acc.addJob(app.WorkerID, app.WorkerName, record, date)
			}
			continue
		}
		date, err := reconcile.JobEffectiveDate(record)
		if err != nil {
			continue
		}
		if !window.Contains(date) {
			continue
		}
		acc.addJob(record.CounterpartyID, record.CounterpartyName, record, date)
	}

	for _, contract := range contracts {
		if !contract.ContributesTo(window) {
			continue
		}
		acc.addContract(contract)
	}

	return acc.buckets(), acc.items, nil
}

// accumulator owns bucket construction for the duration of one call; nothing
// outside observes a partially built bucket.
type accumulator struct {
	byID   map[string]*reconcile.AggregateBucket
	order  []string
	onlyID string
	items  []reconcile.LineItem
}

func newAccumulator(onlyID string) *accumulator {
	return &accumulator{
		byID:   make(map[string]*reconcile.AggregateBucket),
		onlyID: onlyID,
	}
}

func (a *accumulator) bucket(id, name string) *reconcile.AggregateBucket {
	if b, ok := a.byID[id]; ok {
		return b
	}
	b := &reconcile.AggregateBucket{CounterpartyID: id, CounterpartyName: name}
	a.byID[id] = b
	a.order = append(a.order, id)
	return b
}

func (a *accumulator) addJob(id, name string, record reconcile.WorkRecord, date time.Time) {
	if a.onlyID != "" && id != a.onlyID {
		return
	}
	b := a.bucket(id, name)
	b.JobSubtotal += record.Amount
	b.JobCount++
	if a.onlyID != "" {
		a.items = append(a.items, reconcile.LineItem{
			Kind:   reconcile.LineItemJob,
			Title:  record.Title,
			Date:   date,
			Amount: record.Amount,
		})
	}
}

func (a *accumulator) addContract(contract reconcile.ContractRecord) {
	if a.onlyID != "" && contract.CounterpartyID != a.onlyID {
		return
	}
	b := a.bucket(contract.CounterpartyID, contract.CounterpartyName)
	b.ContractSubtotal += contract.Amount
	if a.onlyID != "" {
		a.items = append(a.items, reconcile.LineItem{
			Kind:       reconcile.LineItemContract,
			Title:      contract.Title,
			CycleLabel: contract.BillingCycle.Label(),
			Amount:     contract.Amount,
		})
	}
}

func (a *accumulator) buckets() []reconcile.AggregateBucket {
	result := make([]reconcile.AggregateBucket, 0, len(a.order))
	for _, id := range a.order {
		result = append(result, *a.byID[id])
	}
	return result
}
