package reconcile

import "errors"

var (
	// ErrInvalidMonth is returned when a report month is out of range or unparsable.
	ErrInvalidMonth = errors.New("reconcile: invalid month")
	// ErrUnknownDirection is returned for a direction outside RECEIVING/PLACING.
	ErrUnknownDirection = errors.New("reconcile: unknown direction")
	// ErrUnknownRoundingPolicy is returned for an unsupported rounding policy name.
	ErrUnknownRoundingPolicy = errors.New("reconcile: unknown rounding policy")
	// ErrMissingNominalEnd is returned when an eligible work record has no nominal end.
	ErrMissingNominalEnd = errors.New("reconcile: work record has no nominal end")
	// ErrNilStore is returned when the engine is constructed without a record store.
	ErrNilStore = errors.New("reconcile: nil record store")
)
