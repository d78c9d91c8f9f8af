package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rkoval/revthread/internal/domain/model"
	"github.com/rkoval/revthread/internal/domain/port/driven"
	"github.com/rkoval/revthread/internal/render"
)

// UpdateOperation is one pending remote update produced by a cascade: new
// content plus the mapped thread status for a single thread.
type UpdateOperation struct {
	ThreadID  int
	CommentID int
	Content   string
	Status    model.ThreadStatus
}

// CascadeService propagates a single file's status change up through its
// folder and the overall summary, and applies the resulting updates to the
// remote threads. history is optional; when present, every applied cascade
// is recorded as an audit event.
type CascadeService struct {
	store   driven.StateStore
	threads driven.ThreadClient
	history driven.HistoryStore
}

// NewCascadeService creates a CascadeService. history may be nil.
func NewCascadeService(store driven.StateStore, threads driven.ThreadClient, history driven.HistoryStore) *CascadeService {
	return &CascadeService{store: store, threads: threads, history: history}
}

// CascadeStatusUpdate recomputes the derived statuses above filePath, writes
// them into state, re-renders the affected summaries, and returns exactly
// two ordered operations: the folder update, then the overall update. It
// performs no I/O; the same state pointer is mutated and remains owned by
// the caller.
func (s *CascadeService) CascadeStatusUpdate(state *model.ReviewState, filePath, baseURL string) ([]UpdateOperation, error) {
	filePath = model.NormalizePath(filePath)

	entry, err := state.File(filePath)
	if err != nil {
		return nil, err
	}
	folder, err := state.Folder(entry.Folder)
	if err != nil {
		return nil, err
	}

	folderStatus, err := DeriveFolderStatus(state, entry.Folder)
	if err != nil {
		return nil, err
	}
	folder.Status = folderStatus
	state.Overall.Status = DeriveOverallStatus(state)

	ops := []UpdateOperation{
		{
			ThreadID:  folder.ThreadID,
			CommentID: folder.CommentID,
			Content:   render.FolderSummary(entry.Folder, state),
			Status:    folder.Status.ThreadStatus(),
		},
		{
			ThreadID:  state.Overall.ThreadID,
			CommentID: state.Overall.CommentID,
			Content:   render.OverallSummary(state),
			Status:    state.Overall.Status.ThreadStatus(),
		},
	}

	return ops, nil
}

// ExecuteCascade applies the operations in order. For each operation the
// content update runs strictly before the thread-status update. The dry-run
// flag is forwarded to both sub-calls.
func (s *CascadeService) ExecuteCascade(ctx context.Context, prID int, ops []UpdateOperation, dryRun bool) error {
	for _, op := range ops {
		if err := s.threads.PatchComment(ctx, prID, op.ThreadID, op.CommentID, op.Content, dryRun); err != nil {
			return fmt.Errorf("updating comment %d on thread %d: %w", op.CommentID, op.ThreadID, err)
		}
		if err := s.threads.PatchThreadStatus(ctx, prID, op.ThreadID, op.Status, dryRun); err != nil {
			return fmt.Errorf("updating status of thread %d: %w", op.ThreadID, err)
		}
	}
	return nil
}

// SetFileStatus is the command-level entry point for a reviewer's explicit
// file-status update: validate, load, mutate, cascade, apply, persist.
// The status string is validated before anything else runs, so an invalid
// status causes no mutation and no API call. Moving a terminal file back to
// in-progress is a re-review and rotates its suggestions first.
func (s *CascadeService) SetFileStatus(ctx context.Context, prID int, filePath, statusArg, baseURL string, dryRun bool) error {
	status, err := model.ParseStatus(statusArg)
	if err != nil {
		return err
	}

	state, err := s.store.Load(ctx, prID)
	if err != nil {
		return fmt.Errorf("loading state for PR %d: %w", prID, err)
	}

	entry, err := state.File(filePath)
	if err != nil {
		return err
	}

	oldStatus := entry.Status
	if oldStatus.IsTerminal() && status == model.StatusInProgress {
		entry.RotateSuggestions()
		slog.Info("re-review started, suggestions rotated", "pr_id", prID, "path", filePath)
	}
	entry.Status = status

	ops, err := s.CascadeStatusUpdate(state, filePath, baseURL)
	if err != nil {
		return err
	}

	if err := s.ExecuteCascade(ctx, prID, ops, dryRun); err != nil {
		return err
	}

	if !dryRun {
		if err := s.store.Save(ctx, state); err != nil {
			return fmt.Errorf("saving state for PR %d: %w", prID, err)
		}
		s.recordEvent(ctx, state, filePath, oldStatus, status)
	}

	slog.Info("cascade complete",
		"pr_id", prID,
		"path", model.NormalizePath(filePath),
		"file_status", status,
		"folder_status", ops[0].Status,
		"overall_status", state.Overall.Status,
		"dry_run", dryRun,
	)

	return nil
}

// recordEvent appends an audit event. History failures are logged and never
// fail the cascade.
func (s *CascadeService) recordEvent(ctx context.Context, state *model.ReviewState, filePath string, oldStatus, newStatus model.Status) {
	if s.history == nil {
		return
	}

	filePath = model.NormalizePath(filePath)
	entry := state.Files[filePath]

	event := model.ReviewEvent{
		PRID:          state.PRID,
		FilePath:      filePath,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		OverallStatus: state.Overall.Status,
	}
	if entry != nil {
		if folder, ok := state.Folders[entry.Folder]; ok {
			event.FolderStatus = folder.Status
		}
	}

	if err := s.history.Append(ctx, event); err != nil {
		slog.Warn("failed to record review event", "pr_id", state.PRID, "path", filePath, "error", err)
	}
}
