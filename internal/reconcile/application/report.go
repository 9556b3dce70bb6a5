package application

import (
	reconcile "gigledger/internal/reconcile/domain"
)

// Dimension selects the counterparty axis for bucketing and with it the
// date-resolution mode: counterparty reports resolve one date per job,
// worker reports resolve one date per application.
type Dimension string

const (
	DimensionCounterparty Dimension = "counterparty"
	DimensionWorker       Dimension = "worker"
)

// ReportKind identifies one of the three monthly reconciliation reports.
// Each kind fixes a contract direction and a counterparty dimension; the
// three historically separate report pages are this one engine run with
// different parameters.
type ReportKind string

const (
	ReportClientBilling  ReportKind = "client_billing"
	ReportPartnerPayment ReportKind = "partner_payment"
	ReportWorkerPayment  ReportKind = "worker_payment"
)

// ParseReportKind validates a report kind string.
func ParseReportKind(value string) (ReportKind, error) {
	switch ReportKind(value) {
	case ReportClientBilling, ReportPartnerPayment, ReportWorkerPayment:
		return ReportKind(value), nil
	default:
		return "", ErrUnknownReportKind
	}
}

// Direction returns the contract direction for the kind.
func (k ReportKind) Direction() reconcile.Direction {
	if k == ReportClientBilling {
		return reconcile.DirectionReceiving
	}
	return reconcile.DirectionPlacing
}

// Dimension returns the bucketing axis for the kind.
func (k ReportKind) Dimension() Dimension {
	if k == ReportWorkerPayment {
		return DimensionWorker
	}
	return DimensionCounterparty
}

// Name returns the export base name.
func (k ReportKind) Name() string { return string(k) }

// Title returns the default display title.
func (k ReportKind) Title() string {
	switch k {
	case ReportClientBilling:
		return "Client Billing"
	case ReportPartnerPayment:
		return "Partner Payment"
	case ReportWorkerPayment:
		return "Worker Payment"
	default:
		return string(k)
	}
}
