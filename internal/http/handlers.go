package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"spendsight/internal/core"
	"spendsight/internal/identity"
)

// bearerToken extracts the session token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// handleGetInsights runs the full pipeline for the authenticated caller.
// Degraded results still return 200 with a well-formed list; only an
// unidentifiable caller yields an error status.
func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	result, err := s.insights.GetInsights(r.Context(), bearerToken(r))
	if err != nil {
		if errors.Is(err, identity.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		slog.ErrorContext(r.Context(), "Insight pipeline error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, insightsResponse{Insights: result})
}

type createExpenseRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type createExpenseResponse struct {
	ID       string `json:"id"`
	Category string `json:"category"`
}

// handleCreateExpense appends a record for the caller. A missing category is
// filled in by the AI categorizer.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := s.resolveUser(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := core.ExpenseRecord{
		Amount:      core.ParseAmount(req.Amount),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Date:        time.Now().UTC(),
	}
	if req.Date != "" {
		t, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date: must be RFC 3339")
			return
		}
		rec.Date = t
	}
	if rec.Category == "" {
		rec.Category = s.categorize(r.Context(), rec.Description)
	}

	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.store.Append(r.Context(), userID, rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to append record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save expense")
		return
	}

	writeJSON(w, http.StatusCreated, createExpenseResponse{ID: id, Category: rec.Category})
}

func (s *Server) categorize(ctx context.Context, description string) string {
	if s.categorizer == nil {
		return core.DefaultCategory
	}
	return s.categorizer.Categorize(ctx, description)
}
