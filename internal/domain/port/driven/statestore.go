package driven

import (
	"context"
	"errors"

	"github.com/rkoval/revthread/internal/domain/model"
)

// ErrStateNotFound signals that no review state is persisted for a PR.
// The scaffolder treats this as "not yet scaffolded", not as a failure.
var ErrStateNotFound = errors.New("review state not found")

// StateStore defines the driven port for review-state persistence.
type StateStore interface {
	// Load returns the persisted state for the PR, or an error wrapping
	// ErrStateNotFound when none exists.
	Load(ctx context.Context, prID int) (*model.ReviewState, error)

	// Save writes the full state, creating parent directories as needed and
	// overwriting any previous document. Save followed by Load must yield a
	// structurally identical state.
	Save(ctx context.Context, state *model.ReviewState) error
}
