package reconcile

import (
	"context"
	"time"
)

// RecordStore is the external record store the engine reads from. Both
// fetches take the wide window bounds; precise month filtering happens in
// the engine, never in the store. Implementations must return records in a
// stable order; that order is the report order.
type RecordStore interface {
	// FetchCompletedWork returns completed jobs whose nominal end (or period
	// end when flexible) falls within [wideStart, wideEnd], with nested
	// applications attached.
	FetchCompletedWork(ctx context.Context, wideStart, wideEnd time.Time) ([]WorkRecord, error)

	// FetchContracts returns contracts of one direction whose active span
	// satisfies start_date <= windowEnd and (no end or end >= windowStart).
	FetchContracts(ctx context.Context, direction Direction, windowEnd, windowStart time.Time) ([]ContractRecord, error)
}
