package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"gigledger/internal/audit"
	"gigledger/internal/auth"
	"gigledger/internal/observability/metrics"
	"gigledger/internal/reconcile/application"
	reconcile "gigledger/internal/reconcile/domain"
	"gigledger/internal/reconcile/interfaces"
)

// Handler serves the monthly reconciliation reports under
// /api/v1/reports/{kind}/....
type Handler struct {
	engine      *application.Engine
	assembler   *application.Assembler
	config      application.Config
	auditLogger audit.Logger
}

// NewHandler constructs a report handler.
func NewHandler(engine *application.Engine, assembler *application.Assembler, config application.Config, auditLogger audit.Logger) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("report handler: nil engine")
	}
	if assembler == nil {
		return nil, errors.New("report handler: nil assembler")
	}
	return &Handler{engine: engine, assembler: assembler, config: config, auditLogger: auditLogger}, nil
}

// ServeHTTP routes report requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/reports/")
	if rest == r.URL.Path {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	kind, err := application.ParseReportKind(parts[0])
	if err != nil {
		http.Error(w, "unknown report kind", http.StatusBadRequest)
		return
	}
	window, err := reconcile.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
		return
	}

	switch parts[1] {
	case "summary":
		h.handleSummary(w, r, window, kind)
	case "detail":
		h.handleDetail(w, r, window, kind)
	case "export.csv", "export.xlsx", "export.pdf":
		h.handleExport(w, r, window, kind, strings.TrimPrefix(parts[1], "export."))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request, window reconcile.MonthlyWindow, kind application.ReportKind) {
	buckets, err := h.engine.Summarize(r.Context(), window, kind)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	resp := struct {
		Kind  string                   `json:"kind"`
		Month string                   `json:"month"`
		Rows  []application.SummaryRow `json:"rows"`
	}{Kind: string(kind), Month: window.Label(), Rows: h.assembler.SummaryRows(buckets)}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
	h.logAudit(r, kind, "report.summary", map[string]any{"month": window.Label()})
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request, window reconcile.MonthlyWindow, kind application.ReportKind) {
	counterpartyID := r.URL.Query().Get("counterparty_id")
	if counterpartyID == "" {
		http.Error(w, "counterparty_id is required", http.StatusBadRequest)
		return
	}
	items, err := h.engine.Detail(r.Context(), window, kind, counterpartyID)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	resp := struct {
		Kind           string         `json:"kind"`
		Month          string         `json:"month"`
		CounterpartyID string         `json:"counterparty_id"`
		Items          []lineItemJSON `json:"items"`
	}{Kind: string(kind), Month: window.Label(), CounterpartyID: counterpartyID, Items: lineItems(items)}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
	h.logAudit(r, kind, "report.detail", map[string]any{
		"month":           window.Label(),
		"counterparty_id": counterpartyID,
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, window reconcile.MonthlyWindow, kind application.ReportKind, format string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport(format, result, time.Since(start))
	}()

	buckets, err := h.engine.Summarize(r.Context(), window, kind)
	if err != nil {
		result = metrics.ResultError
		respondEngineError(w, err)
		return
	}
	rows := h.assembler.SummaryRows(buckets)
	title := h.config.TitleFor(kind)

	var data []byte
	var contentType string
	switch format {
	case "csv":
		data, err = interfaces.BuildSummaryCSV(rows)
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		data, err = interfaces.BuildSummaryXLSX(title, window, rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, err = interfaces.BuildSummaryPDF(title, window, rows)
		contentType = "application/pdf"
	}
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	filename := interfaces.ExportFileName(kind, window, format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
	h.logAudit(r, kind, "report.export."+format, map[string]any{"month": window.Label()})
}

// respondEngineError keeps "could not compute" distinguishable from an empty
// month: configuration problems are 400, store failures are 502.
func respondEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, application.ErrUnknownReportKind) || errors.Is(err, reconcile.ErrInvalidMonth) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "could not compute report", http.StatusBadGateway)
}

type lineItemJSON struct {
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Date       string `json:"date,omitempty"`
	CycleLabel string `json:"cycle_label,omitempty"`
	Amount     int64  `json:"amount"`
}

func lineItems(items []reconcile.LineItem) []lineItemJSON {
	result := make([]lineItemJSON, 0, len(items))
	for _, item := range items {
		rendered := lineItemJSON{
			Kind:       string(item.Kind),
			Title:      item.Title,
			CycleLabel: item.CycleLabel,
			Amount:     item.Amount,
		}
		if !item.Date.IsZero() {
			rendered.Date = item.Date.Format("2006-01-02")
		}
		result = append(result, rendered)
	}
	return result
}

func (h *Handler) logAudit(r *http.Request, kind application.ReportKind, action string, metadata map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, err := json.Marshal(metadata)
	if err != nil {
		payload = nil
	}
	entry := audit.Entry{
		TenantID:     auth.TenantIDFromContext(r.Context()),
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "report",
		ResourceID:   string(kind),
		Metadata:     payload,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}
