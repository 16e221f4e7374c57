package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"financetrack/internal/core"
	"financetrack/internal/log"
	"financetrack/internal/report"
	"financetrack/internal/services"
)

type (
	transactionJSON struct {
		ID          int64  `json:"id"`
		Date        string `json:"date"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Group       string `json:"group"`
		AmountCents int64  `json:"amount_cents"`
		Amount      string `json:"amount"`
	}

	totalsJSON struct {
		IncomeCents  int64  `json:"income_cents"`
		ExpenseCents int64  `json:"expense_cents"`
		NetCents     int64  `json:"net_cents"`
		AverageCents int64  `json:"average_cents"`
		Income       string `json:"income"`
		Expense      string `json:"expense"`
		Net          string `json:"net"`
		Average      string `json:"average"`
		Count        int    `json:"count"`
		IncomeCount  int    `json:"income_count"`
		ExpenseCount int    `json:"expense_count"`
	}

	summaryResponse struct {
		Month              string           `json:"month"`
		Category           string           `json:"category"`
		Group              string           `json:"group"`
		Totals             totalsJSON       `json:"totals"`
		CountsByCategory   map[string]int   `json:"counts_by_category"`
		CountsByGroup      map[string]int   `json:"counts_by_group"`
		ExpenseByCategory  map[string]int64 `json:"expense_by_category_cents"`
		IncomeByCategory   map[string]int64 `json:"income_by_category_cents"`
		DistinctCategories int              `json:"distinct_categories"`
		DistinctGroups     int              `json:"distinct_groups"`
	}

	evolutionPointJSON struct {
		Month        string `json:"month"`
		Label        string `json:"label"`
		IncomeCents  int64  `json:"income_cents"`
		ExpenseCents int64  `json:"expense_cents"`
	}

	createRequest struct {
		Date        string `json:"date"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Group       string `json:"group"`
		Amount      string `json:"amount"`
	}
)

func toTransactionJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		Date:        t.Date.Key(),
		Description: t.Description,
		Category:    string(t.Category),
		Group:       string(t.Group),
		AmountCents: t.Amount.Cents,
		Amount:      core.FormatCents(t.Amount.Cents),
	}
}

func toTotalsJSON(t core.Totals) totalsJSON {
	return totalsJSON{
		IncomeCents:  t.Income,
		ExpenseCents: t.Expense,
		NetCents:     t.Net,
		AverageCents: t.Average,
		Income:       core.FormatCents(t.Income),
		Expense:      core.FormatCents(t.Expense),
		Net:          core.FormatCents(t.Net),
		Average:      core.FormatCents(t.Average),
		Count:        t.Count,
		IncomeCount:  t.IncomeCount,
		ExpenseCount: t.ExpenseCount,
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid_body",
			Message: "request body must be a JSON object",
		})
		return
	}

	stored, err := s.svc.Create(r.Context(), services.Input{
		Date:        sanitizeInput(req.Date),
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
		Group:       sanitizeInput(req.Group),
		Amount:      sanitizeInput(req.Amount),
	})
	if err != nil {
		slog.WarnContext(r.Context(), "Transaction rejected", log.FieldError, err)
		writeError(w, err)
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, toTransactionJSON(stored))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid_id",
			Message: "transaction id must be an integer",
		})
		return
	}

	// Removing an unknown id is still a success: the store is unchanged
	// and the client has nothing to act on.
	if err := s.svc.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete failed", log.FieldTransactionID, id, log.FieldError, err)
		writeError(w, err)
		return
	}

	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	criteria := parseCriteria(r.URL.Query(), s.now())
	filtered, err := s.svc.Filtered(criteria)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]transactionJSON, 0, len(filtered))
	for _, t := range filtered {
		out = append(out, toTransactionJSON(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	criteria := parseCriteria(r.URL.Query(), s.now())
	key := summaryCacheKey(criteria)

	if cached, ok := s.summaryCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Summary cache hit", log.FieldMonth, criteria.Month)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	filtered, err := s.svc.Filtered(criteria)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := summaryResponse{
		Month:              string(criteria.Month),
		Category:           criteria.Category,
		Group:              criteria.Group,
		Totals:             toTotalsJSON(core.ComputeTotals(filtered)),
		CountsByCategory:   stringKeys(core.CountsByCategory(filtered)),
		CountsByGroup:      stringKeys(core.CountsByGroup(filtered)),
		ExpenseByCategory:  stringKeys(core.ExpenseSumsByCategory(filtered)),
		IncomeByCategory:   stringKeys(core.IncomeSumsByCategory(filtered)),
		DistinctCategories: core.DistinctCategories(filtered),
		DistinctGroups:     core.DistinctGroups(filtered),
	}

	s.summaryCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvolution(w http.ResponseWriter, r *http.Request) {
	window := s.window
	if v := strings.TrimSpace(r.URL.Query().Get("months")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 24 {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   "invalid_window",
				Message: "months must be an integer between 1 and 24",
			})
			return
		}
		window = n
	}

	key := strconv.Itoa(window)
	points, ok := s.evolutionCache.Get(key)
	if !ok {
		// Always over the full ledger, never the filtered view
		points = core.MonthlyEvolution(s.svc.All(), s.now(), window)
		s.evolutionCache.Set(key, points)
	}

	out := make([]evolutionPointJSON, 0, len(points))
	for _, p := range points {
		out = append(out, evolutionPointJSON{
			Month:        string(p.Month),
			Label:        p.Label,
			IncomeCents:  p.Income,
			ExpenseCents: p.Expense,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	criteria := parseCriteria(r.URL.Query(), s.now())
	filtered, err := s.svc.Filtered(criteria)
	if err != nil {
		writeError(w, err)
		return
	}

	stmt := report.Statement{
		Month:        criteria.Month,
		Transactions: filtered,
		Totals:       core.ComputeTotals(filtered),
		GeneratedAt:  s.now(),
	}

	var buf bytes.Buffer
	if err := report.WriteStatement(&buf, stmt); err != nil {
		slog.ErrorContext(r.Context(), "Statement rendering failed", log.FieldMonth, criteria.Month, log.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "statement_failed",
			Message: "could not render the statement",
		})
		return
	}

	filename := fmt.Sprintf("FinanceTrack_Statement_%s.pdf", criteria.Month)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func summaryCacheKey(c core.Criteria) string {
	return string(c.Month) + "|" + c.Category + "|" + c.Group
}

func stringKeys[K ~string, V any](in map[K]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}
