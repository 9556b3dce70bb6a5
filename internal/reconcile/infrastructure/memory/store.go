package memory

import (
	"context"
	"sync"
	"time"

	reconcile "gigledger/internal/reconcile/domain"
)

// RecordStore is an in-memory record store. It applies the same coarse
// filters a real store would: wide-window bounds for work records and the
// active-span predicate for contracts. Records are returned in insertion
// order.
type RecordStore struct {
	mu        sync.RWMutex
	work      []reconcile.WorkRecord
	contracts []reconcile.ContractRecord

	failWork      error
	failContracts error
}

// NewRecordStore constructs an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// AddWork appends work records.
func (s *RecordStore) AddWork(records ...reconcile.WorkRecord) {
	s.mu.Lock()
	s.work = append(s.work, records...)
	s.mu.Unlock()
}

// AddContracts appends contract records.
func (s *RecordStore) AddContracts(records ...reconcile.ContractRecord) {
	s.mu.Lock()
	s.contracts = append(s.contracts, records...)
	s.mu.Unlock()
}

// FailWith makes subsequent fetches return the given errors.
func (s *RecordStore) FailWith(workErr, contractErr error) {
	s.mu.Lock()
	s.failWork = workErr
	s.failContracts = contractErr
	s.mu.Unlock()
}

// FetchCompletedWork returns completed jobs indexed inside the wide bounds.
func (s *RecordStore) FetchCompletedWork(ctx context.Context, wideStart, wideEnd time.Time) ([]reconcile.WorkRecord, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWork != nil {
		return nil, s.failWork
	}
	var result []reconcile.WorkRecord
	for _, record := range s.work {
		if record.Status != reconcile.WorkStatusCompleted {
			continue
		}
		indexed := record.NominalEnd
		if record.IsFlexible && record.PeriodEnd != nil {
			indexed = *record.PeriodEnd
		}
		if indexed.Before(wideStart) || indexed.After(wideEnd) {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

// FetchContracts returns contracts of one direction overlapping the window.
func (s *RecordStore) FetchContracts(ctx context.Context, direction reconcile.Direction, windowEnd, windowStart time.Time) ([]reconcile.ContractRecord, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failContracts != nil {
		return nil, s.failContracts
	}
	var result []reconcile.ContractRecord
	for _, contract := range s.contracts {
		if contract.Direction != direction {
			continue
		}
		if contract.StartDate.After(windowEnd) {
			continue
		}
		if contract.EndDate != nil && contract.EndDate.Before(windowStart) {
			continue
		}
		result = append(result, contract)
	}
	return result, nil
}
