package driven

import (
	"context"

	"github.com/rkoval/revthread/internal/domain/model"
)

// HistoryStore defines the driven port for the append-only cascade audit log.
type HistoryStore interface {
	Append(ctx context.Context, event model.ReviewEvent) error
	ListByPR(ctx context.Context, prID int) ([]model.ReviewEvent, error)
}
