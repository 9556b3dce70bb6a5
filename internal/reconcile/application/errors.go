package application

import "errors"

var (
	// ErrUnknownReportKind is returned for a report kind outside the three
	// supported reports. Rejected before any fetch is attempted.
	ErrUnknownReportKind = errors.New("reconcile: unknown report kind")
)
