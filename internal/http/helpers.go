package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"financetrack/internal/core"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors onto stable error codes and HTTP statuses.
// Validation failures are 422, malformed filters 400, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		status = http.StatusInternalServerError
		code   = "internal_error"
	)
	switch {
	case errors.Is(err, core.ErrInvalidFilter):
		status, code = http.StatusBadRequest, "invalid_filter"
	case errors.Is(err, core.ErrInvalidAmount):
		status, code = http.StatusUnprocessableEntity, "invalid_amount"
	case errors.Is(err, core.ErrInvalidDate):
		status, code = http.StatusUnprocessableEntity, "invalid_date"
	case errors.Is(err, core.ErrInvalidCategory):
		status, code = http.StatusUnprocessableEntity, "invalid_category"
	case errors.Is(err, core.ErrInvalidGroup):
		status, code = http.StatusUnprocessableEntity, "invalid_group"
	case errors.Is(err, core.ErrEmptyDescription):
		status, code = http.StatusUnprocessableEntity, "empty_description"
	}
	writeJSON(w, status, errorResponse{Error: code, Message: err.Error()})
}

// parseCriteria reads the month/category/group selection from the query
// string. Month defaults to the current month; category and group default to
// the wildcard.
func parseCriteria(query url.Values, now time.Time) core.Criteria {
	c := core.Criteria{
		Month:    core.MonthKeyOf(now),
		Category: core.FilterAll,
		Group:    core.FilterAll,
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		c.Month = core.MonthKey(v)
	}
	if v := strings.TrimSpace(query.Get("category")); v != "" {
		c.Category = v
	}
	if v := strings.TrimSpace(query.Get("group")); v != "" {
		c.Group = v
	}
	return c
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
