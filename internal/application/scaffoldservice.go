package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rkoval/revthread/internal/domain/model"
	"github.com/rkoval/revthread/internal/domain/port/driven"
	"github.com/rkoval/revthread/internal/render"
)

// ScaffoldRequest describes the PR whose discussion-thread hierarchy should
// be created. Files may be empty, in which case the changed-file list is
// fetched from the PR's latest iteration.
type ScaffoldRequest struct {
	PRID           int
	Organization   string
	Project        string
	RepositoryID   string
	RepositoryName string
	Files          []string
	DryRun         bool
}

// ScaffoldService performs the one-time, idempotent creation of all review
// discussion threads for a pull request: one per file, one per top-level
// folder, and one overall. State is checkpointed after each phase so a crash
// loses at most one phase of network calls.
type ScaffoldService struct {
	store   driven.StateStore
	threads driven.ThreadClient
	out     io.Writer
}

// NewScaffoldService creates a ScaffoldService. out receives the dry-run plan.
func NewScaffoldService(store driven.StateStore, threads driven.ThreadClient, out io.Writer) *ScaffoldService {
	return &ScaffoldService{store: store, threads: threads, out: out}
}

// Scaffold creates the full thread hierarchy and persists the resulting
// state. Re-running against an already-scaffolded PR returns the existing
// state without any API call; the presence of persisted state is the sole
// idempotency signal. In dry-run mode the plan is printed, no API call is
// made, and no state is returned.
func (s *ScaffoldService) Scaffold(ctx context.Context, req ScaffoldRequest) (*model.ReviewState, error) {
	existing, err := s.store.Load(ctx, req.PRID)
	if err == nil {
		slog.Info("review state already exists, skipping scaffold", "pr_id", req.PRID)
		return existing, nil
	}
	if !errors.Is(err, driven.ErrStateNotFound) {
		return nil, fmt.Errorf("checking existing state for PR %d: %w", req.PRID, err)
	}

	state := model.NewReviewState(req.PRID, req.Organization, req.Project, req.RepositoryID, req.RepositoryName)

	files := req.Files
	var tracking map[string]int
	if len(files) == 0 {
		files, tracking, err = s.fetchChangedFiles(ctx, req.PRID, state)
		if err != nil {
			return nil, err
		}
	}

	entries := make(map[string]*model.FileEntry, len(files))
	for _, path := range files {
		entry := state.AddFile(path)
		entry.ChangeTrackingID = tracking[model.NormalizePath(path)]
		entries[model.NormalizePath(path)] = entry
	}

	if req.DryRun {
		s.printPlan(state)
		return nil, nil
	}

	// Phase 1: one thread per file, anchored to the file path.
	for _, path := range state.FileOrder {
		entry := entries[path]
		threadID, commentID, err := s.threads.CreateThread(ctx, req.PRID, driven.NewThread{
			Content:  render.FileSummary(path, entry, ""),
			Status:   model.StatusUnreviewed.ThreadStatus(),
			FilePath: path,
		})
		if err != nil {
			return nil, fmt.Errorf("creating file thread for %s: %w", path, err)
		}
		entry.ThreadID = threadID
		entry.CommentID = commentID
		slog.Debug("file thread created", "path", path, "thread_id", threadID)
	}
	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("saving state after file threads: %w", err)
	}

	// Phase 2: one PR-level thread per folder.
	for _, name := range state.FolderOrder {
		folder := state.Folders[name]
		threadID, commentID, err := s.threads.CreateThread(ctx, req.PRID, driven.NewThread{
			Content: render.FolderSummary(name, state),
			Status:  model.StatusUnreviewed.ThreadStatus(),
		})
		if err != nil {
			return nil, fmt.Errorf("creating folder thread for %s: %w", name, err)
		}
		folder.ThreadID = threadID
		folder.CommentID = commentID
		slog.Debug("folder thread created", "folder", name, "thread_id", threadID)
	}
	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("saving state after folder threads: %w", err)
	}

	// Phase 3: the single overall-summary thread.
	threadID, commentID, err := s.threads.CreateThread(ctx, req.PRID, driven.NewThread{
		Content: render.OverallSummary(state),
		Status:  model.StatusUnreviewed.ThreadStatus(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating overall thread: %w", err)
	}
	state.Overall.ThreadID = threadID
	state.Overall.CommentID = commentID

	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("saving final state: %w", err)
	}

	slog.Info("scaffold complete",
		"pr_id", req.PRID,
		"files", len(state.Files),
		"folders", len(state.Folders),
		"threads_created", len(state.Files)+len(state.Folders)+1,
	)

	return state, nil
}

// fetchChangedFiles pulls the changed-file list from the PR's latest
// iteration and records the iteration id on the state. The returned map
// carries each file's change tracking id.
func (s *ScaffoldService) fetchChangedFiles(ctx context.Context, prID int, state *model.ReviewState) ([]string, map[string]int, error) {
	iterations, err := s.threads.ListIterations(ctx, prID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing iterations for PR %d: %w", prID, err)
	}
	if len(iterations) == 0 {
		return nil, nil, fmt.Errorf("PR %d has no iterations", prID)
	}

	latest := iterations[0].ID
	for _, it := range iterations {
		if it.ID > latest {
			latest = it.ID
		}
	}
	state.LatestIterationID = latest

	changes, err := s.threads.ListIterationChanges(ctx, prID, latest)
	if err != nil {
		return nil, nil, fmt.Errorf("listing changes for PR %d iteration %d: %w", prID, latest, err)
	}

	files := make([]string, 0, len(changes))
	tracking := make(map[string]int, len(changes))
	for _, ch := range changes {
		path := model.NormalizePath(ch.Path)
		files = append(files, path)
		tracking[path] = ch.ChangeTrackingID
	}

	return files, tracking, nil
}

// printPlan writes the full scaffold plan without touching the network.
func (s *ScaffoldService) printPlan(state *model.ReviewState) {
	fmt.Fprintf(s.out, "scaffold plan for PR %d (dry run, no API calls):\n", state.PRID)
	for _, path := range state.FileOrder {
		fmt.Fprintf(s.out, "  file thread:    %s (folder %s)\n", path, state.Files[path].Folder)
	}
	for _, name := range state.FolderOrder {
		fmt.Fprintf(s.out, "  folder thread:  %s (%d files)\n", name, len(state.Folders[name].Files))
	}
	fmt.Fprintf(s.out, "  overall thread: 1\n")
	fmt.Fprintf(s.out, "total thread creations: %d\n", len(state.Files)+len(state.Folders)+1)
}
