package application

import (
	reconcile "gigledger/internal/reconcile/domain"
)

// SummaryRow is one bucket rendered for the presentation layer, with tax and
// gross derived through the single configured rounding policy.
type SummaryRow struct {
	CounterpartyID   string `json:"counterparty_id"`
	CounterpartyName string `json:"counterparty_name"`
	JobSubtotal      int64  `json:"job_subtotal"`
	ContractSubtotal int64  `json:"contract_subtotal"`
	JobCount         int    `json:"job_count"`
	Total            int64  `json:"total"`
	Tax              int64  `json:"tax"`
	Gross            int64  `json:"gross"`
}

// Assembler turns engine buckets into the shapes consumers need. No
// aggregation logic lives here; it only derives presentation values.
type Assembler struct {
	tax reconcile.TaxNormalizer
}

// NewAssembler constructs an assembler with one tax normalizer shared by
// every report kind.
func NewAssembler(tax reconcile.TaxNormalizer) *Assembler {
	return &Assembler{tax: tax}
}

// SummaryRows renders buckets in their given order.
func (a *Assembler) SummaryRows(buckets []reconcile.AggregateBucket) []SummaryRow {
	rows := make([]SummaryRow, 0, len(buckets))
	for _, b := range buckets {
		total := b.Total()
		rows = append(rows, SummaryRow{
			CounterpartyID:   b.CounterpartyID,
			CounterpartyName: b.CounterpartyName,
			JobSubtotal:      b.JobSubtotal,
			ContractSubtotal: b.ContractSubtotal,
			JobCount:         b.JobCount,
			Total:            total,
			Tax:              a.tax.Tax(total),
			Gross:            a.tax.Gross(total),
		})
	}
	return rows
}
