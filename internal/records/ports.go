// Package records defines the outbound port to the expense record store.
package records

import (
	"context"
	"time"

	"spendsight/internal/core"
)

// Store is the record store collaborator. The insight pipeline treats it as
// a black box: no retries, no paging beyond the requested limit.
type Store interface {
	// ListRecent returns at most limit records for the user dated at or
	// after since, ordered newest-first.
	ListRecent(ctx context.Context, userID string, since time.Time, limit int) ([]core.ExpenseRecord, error)

	// Append stores a new record for the user and returns its id.
	Append(ctx context.Context, userID string, r core.ExpenseRecord) (string, error)
}
