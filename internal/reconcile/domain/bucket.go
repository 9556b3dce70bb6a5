package reconcile

import "time"

// AggregateBucket is the per-counterparty accumulator for one report
// invocation. The bucket total is always derived from its parts.
type AggregateBucket struct {
	CounterpartyID   string
	CounterpartyName string
	JobSubtotal      int64
	ContractSubtotal int64
	JobCount         int
}

// Total returns job subtotal plus contract subtotal. Never stored.
func (b AggregateBucket) Total() int64 {
	return b.JobSubtotal + b.ContractSubtotal
}

// LineItemKind distinguishes job and contract line items.
type LineItemKind string

const (
	LineItemJob      LineItemKind = "job"
	LineItemContract LineItemKind = "contract"
)

// LineItem is one contributing record rendered for drill-down, in
// store-return order.
type LineItem struct {
	Kind       LineItemKind
	Title      string
	Date       time.Time // resolved effective date, job items only
	CycleLabel string    // billing cycle label, contract items only
	Amount     int64
}
