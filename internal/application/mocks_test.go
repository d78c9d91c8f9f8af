package application

import (
	"context"
	"fmt"

	"github.com/rkoval/revthread/internal/domain/model"
	"github.com/rkoval/revthread/internal/domain/port/driven"
)

// --- Fake implementations of the driven ports ---

type fakeStateStore struct {
	states    map[int]*model.ReviewState
	loadCalls int
	saveCalls int
	saveErr   error
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{states: make(map[int]*model.ReviewState)}
}

func (f *fakeStateStore) Load(_ context.Context, prID int) (*model.ReviewState, error) {
	f.loadCalls++
	state, ok := f.states[prID]
	if !ok {
		return nil, fmt.Errorf("PR %d: %w", prID, driven.ErrStateNotFound)
	}
	return state, nil
}

func (f *fakeStateStore) Save(_ context.Context, state *model.ReviewState) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.states[state.PRID] = state
	return nil
}

// threadCall records one ThreadClient invocation for order assertions.
type threadCall struct {
	kind     string // "create", "content", or "status"
	threadID int
	dryRun   bool
}

type fakeThreadClient struct {
	calls      []threadCall
	created    []driven.NewThread
	createFail int // 1-based creation index that fails; 0 = never
	patchErr   error
	iterations []model.Iteration
	changes    []model.IterationChange
}

func (f *fakeThreadClient) CreateThread(_ context.Context, _ int, thread driven.NewThread) (int, int, error) {
	n := len(f.created) + 1
	if f.createFail == n {
		return 0, 0, fmt.Errorf("simulated http failure on creation %d", n)
	}
	f.created = append(f.created, thread)
	f.calls = append(f.calls, threadCall{kind: "create", threadID: 100 + n})
	return 100 + n, 1000 + n, nil
}

func (f *fakeThreadClient) PatchComment(_ context.Context, _, threadID, _ int, _ string, dryRun bool) error {
	if f.patchErr != nil {
		return f.patchErr
	}
	f.calls = append(f.calls, threadCall{kind: "content", threadID: threadID, dryRun: dryRun})
	return nil
}

func (f *fakeThreadClient) PatchThreadStatus(_ context.Context, _, threadID int, _ model.ThreadStatus, dryRun bool) error {
	f.calls = append(f.calls, threadCall{kind: "status", threadID: threadID, dryRun: dryRun})
	return nil
}

func (f *fakeThreadClient) ListIterations(_ context.Context, _ int) ([]model.Iteration, error) {
	return f.iterations, nil
}

func (f *fakeThreadClient) ListIterationChanges(_ context.Context, _, _ int) ([]model.IterationChange, error) {
	return f.changes, nil
}

func (f *fakeThreadClient) creations() int {
	return len(f.created)
}

type fakeHistoryStore struct {
	events []model.ReviewEvent
}

func (f *fakeHistoryStore) Append(_ context.Context, event model.ReviewEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeHistoryStore) ListByPR(_ context.Context, prID int) ([]model.ReviewEvent, error) {
	var out []model.ReviewEvent
	for _, ev := range f.events {
		if ev.PRID == prID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// scaffoldedState builds a state with host-assigned ids already in place,
// as the scaffolder would leave it.
func scaffoldedState(prID int, paths ...string) *model.ReviewState {
	state := model.NewReviewState(prID, "https://dev.azure.com/acme", "platform", "repo-id", "repo")

	nextID := 1
	for _, path := range paths {
		entry := state.AddFile(path)
		entry.ThreadID = 100 + nextID
		entry.CommentID = 1000 + nextID
		nextID++
	}
	for _, name := range state.FolderOrder {
		state.Folders[name].ThreadID = 100 + nextID
		state.Folders[name].CommentID = 1000 + nextID
		nextID++
	}
	state.Overall.ThreadID = 100 + nextID
	state.Overall.CommentID = 1000 + nextID

	return state
}
