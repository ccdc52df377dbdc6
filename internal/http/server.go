// Package http exposes the JSON API: the insight pipeline plus expense
// recording. The presentation layer consumes this surface; no HTML is
// rendered here.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"spendsight/internal/core"
	"spendsight/internal/insights"
	"spendsight/internal/records"
)

// Categorizer fills in a category when a new expense arrives without one.
type Categorizer interface {
	Categorize(ctx context.Context, description string) string
}

type Server struct {
	insights    *insights.Service
	store       records.Store
	categorizer Categorizer
	resolveUser func(ctx context.Context, token string) (string, error)
}

// NewServer builds the API server. resolveUser is the identity resolver's
// Resolve method; it is shared with the insight service so both surfaces
// agree on who the caller is.
func NewServer(
	addr string,
	svc *insights.Service,
	store records.Store,
	categorizer Categorizer,
	resolveUser func(ctx context.Context, token string) (string, error),
) *http.Server {
	s := &Server{
		insights:    svc,
		store:       store,
		categorizer: categorizer,
		resolveUser: resolveUser,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/insights", s.handleGetInsights)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleHealth)

	return &http.Server{
		Addr:    addr,
		Handler: traceMiddleware(mux),
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// insightsResponse is the envelope for GET /api/insights.
type insightsResponse struct {
	Insights []core.Insight `json:"insights"`
}
