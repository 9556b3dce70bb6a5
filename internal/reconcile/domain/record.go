package reconcile

import "time"

// Direction tells which way money flows for a contract.
type Direction string

const (
	// DirectionReceiving marks contracts where the counterparty owes us.
	DirectionReceiving Direction = "RECEIVING"
	// DirectionPlacing marks contracts where we owe the counterparty.
	DirectionPlacing Direction = "PLACING"
)

// ParseDirection validates a direction string.
func ParseDirection(value string) (Direction, error) {
	switch Direction(value) {
	case DirectionReceiving, DirectionPlacing:
		return Direction(value), nil
	default:
		return "", ErrUnknownDirection
	}
}

// BillingCycle governs whether a contract contributes once or every month of
// its active span.
type BillingCycle string

const (
	CycleOnce      BillingCycle = "ONCE"
	CycleMonthly   BillingCycle = "MONTHLY"
	CycleQuarterly BillingCycle = "QUARTERLY"
	CycleYearly    BillingCycle = "YEARLY"
)

// Label returns the human label shown on drill-down line items.
func (c BillingCycle) Label() string {
	switch c {
	case CycleOnce:
		return "one-time"
	case CycleMonthly:
		return "monthly"
	case CycleQuarterly:
		return "quarterly"
	case CycleYearly:
		return "yearly"
	default:
		return string(c)
	}
}

// WorkStatusCompleted is the only status eligible for reconciliation.
const WorkStatusCompleted = "COMPLETED"

// ApplicationRecord is one staffing application linked to a job.
type ApplicationRecord struct {
	WorkerID       string
	WorkerName     string
	Status         string
	ActualStart    *time.Time
	ScheduledStart *time.Time
}

// WorkRecord is one completed job with its linked applications, in
// store-return order.
type WorkRecord struct {
	JobID            string
	CounterpartyID   string
	CounterpartyName string
	Title            string
	Amount           int64
	Status           string
	IsFlexible       bool
	NominalEnd       time.Time
	PeriodEnd        *time.Time
	Applications     []ApplicationRecord
}

// Eligible reports whether the record may enter a reconciliation at all.
func (r WorkRecord) Eligible() bool {
	return r.Status == WorkStatusCompleted
}

// ContractRecord is a standing or one-time commercial agreement.
type ContractRecord struct {
	ContractID       string
	CounterpartyID   string
	CounterpartyName string
	Title            string
	Direction        Direction
	BillingCycle     BillingCycle
	Amount           int64
	StartDate        time.Time
	EndDate          *time.Time
}

// ActiveDuring reports whether the contract's span overlaps the precise
// window: started on or before the window end and not ended before the
// window start.
func (c ContractRecord) ActiveDuring(w MonthlyWindow) bool {
	if c.StartDate.After(w.End) {
		return false
	}
	return c.EndDate == nil || !c.EndDate.Before(w.Start)
}

// ContributesTo decides inclusion for the window. ONCE contracts count only
// in the month containing their start date; recurring contracts count their
// full amount in every active month, with no proration or period-skipping.
func (c ContractRecord) ContributesTo(w MonthlyWindow) bool {
	if c.BillingCycle == CycleOnce {
		return w.Contains(c.StartDate)
	}
	return c.ActiveDuring(w)
}
