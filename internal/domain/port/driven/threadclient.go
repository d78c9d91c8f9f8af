package driven

import (
	"context"

	"github.com/rkoval/revthread/internal/domain/model"
)

// NewThread is the input to ThreadClient.CreateThread.
type NewThread struct {
	Content  string
	Status   model.ThreadStatus
	FilePath string // Optional anchor; empty means a PR-level thread.
}

// ThreadClient defines the driven port for the code host's pull-request
// discussion-thread API. Implementations propagate non-success HTTP statuses
// as errors; retry policy, if any, lives inside the implementation's
// transport, never in the callers.
type ThreadClient interface {
	// CreateThread creates a discussion thread with a single root comment
	// and returns the thread and comment ids assigned by the host.
	CreateThread(ctx context.Context, prID int, thread NewThread) (threadID, commentID int, err error)

	// PatchComment replaces the content of an existing comment. With dryRun
	// set it performs no network I/O but exercises the same call contract.
	PatchComment(ctx context.Context, prID, threadID, commentID int, content string, dryRun bool) error

	// PatchThreadStatus updates a thread's lifecycle status. Dry-run as above.
	PatchThreadStatus(ctx context.Context, prID, threadID int, status model.ThreadStatus, dryRun bool) error

	// ListIterations returns the PR's iterations, oldest first.
	ListIterations(ctx context.Context, prID int) ([]model.Iteration, error)

	// ListIterationChanges returns the files changed in one iteration.
	ListIterationChanges(ctx context.Context, prID, iterationID int) ([]model.IterationChange, error)
}
