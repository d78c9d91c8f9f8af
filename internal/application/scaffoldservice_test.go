package application

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkoval/revthread/internal/domain/model"
)

func TestScaffold_CreatesAllThreads(t *testing.T) {
	store := newFakeStateStore()
	threads := &fakeThreadClient{}
	svc := NewScaffoldService(store, threads, io.Discard)

	state, err := svc.Scaffold(context.Background(), ScaffoldRequest{
		PRID:  42,
		Files: []string{"/src/a.ts", "/src/b.ts", "/utils/c.ts"},
	})
	require.NoError(t, err)
	require.NotNil(t, state)

	// N files + F folders + 1 overall.
	assert.Equal(t, 6, threads.creations())
	// One checkpoint per phase.
	assert.Equal(t, 3, store.saveCalls)

	// Phase order: file threads carry their anchor, the rest do not.
	require.Len(t, threads.created, 6)
	assert.Equal(t, "/src/a.ts", threads.created[0].FilePath)
	assert.Equal(t, "/src/b.ts", threads.created[1].FilePath)
	assert.Equal(t, "/utils/c.ts", threads.created[2].FilePath)
	assert.Empty(t, threads.created[3].FilePath)
	assert.Empty(t, threads.created[4].FilePath)
	assert.Empty(t, threads.created[5].FilePath)

	assert.Equal(t, []string{"src", "utils"}, state.FolderOrder)
	for path, entry := range state.Files {
		assert.NotZero(t, entry.ThreadID, path)
		assert.NotZero(t, entry.CommentID, path)
		assert.Equal(t, model.StatusUnreviewed, entry.Status, path)
	}
	for name, folder := range state.Folders {
		assert.NotZero(t, folder.ThreadID, name)
		assert.Equal(t, model.StatusUnreviewed, folder.Status, name)
	}
	assert.NotZero(t, state.Overall.ThreadID)
	assert.Equal(t, model.StatusUnreviewed, state.Overall.Status)
}

func TestScaffold_Idempotent(t *testing.T) {
	store := newFakeStateStore()
	existing := scaffoldedState(42, "/src/a.ts")
	store.states[42] = existing

	threads := &fakeThreadClient{}
	svc := NewScaffoldService(store, threads, io.Discard)

	state, err := svc.Scaffold(context.Background(), ScaffoldRequest{
		PRID:  42,
		Files: []string{"/src/a.ts"},
	})
	require.NoError(t, err)

	assert.Same(t, existing, state)
	assert.Zero(t, threads.creations())
	assert.Zero(t, store.saveCalls)
}

func TestScaffold_DryRun(t *testing.T) {
	store := newFakeStateStore()
	threads := &fakeThreadClient{}
	var out bytes.Buffer
	svc := NewScaffoldService(store, threads, &out)

	state, err := svc.Scaffold(context.Background(), ScaffoldRequest{
		PRID:   42,
		Files:  []string{"/src/a.ts", "/src/b.ts", "/utils/c.ts"},
		DryRun: true,
	})
	require.NoError(t, err)

	assert.Nil(t, state)
	assert.Zero(t, threads.creations())
	assert.Zero(t, store.saveCalls)

	plan := out.String()
	assert.Contains(t, plan, "/src/a.ts")
	assert.Contains(t, plan, "folder thread:  utils")
	assert.Contains(t, plan, "total thread creations: 6")
}

func TestScaffold_FailureBeforeFirstCheckpoint(t *testing.T) {
	store := newFakeStateStore()
	threads := &fakeThreadClient{createFail: 2}
	svc := NewScaffoldService(store, threads, io.Discard)

	_, err := svc.Scaffold(context.Background(), ScaffoldRequest{
		PRID:  42,
		Files: []string{"/src/a.ts", "/src/b.ts"},
	})
	require.Error(t, err)

	// Nothing was persisted: the next scaffold restarts from zero.
	assert.Zero(t, store.saveCalls)
	assert.NotContains(t, store.states, 42)
}

func TestScaffold_FailureInFolderPhase_KeepsFileCheckpoint(t *testing.T) {
	store := newFakeStateStore()
	threads := &fakeThreadClient{createFail: 3} // two file threads succeed, folder thread fails
	svc := NewScaffoldService(store, threads, io.Discard)

	_, err := svc.Scaffold(context.Background(), ScaffoldRequest{
		PRID:  42,
		Files: []string{"/src/a.ts", "/src/b.ts"},
	})
	require.Error(t, err)

	assert.Equal(t, 1, store.saveCalls)
	require.Contains(t, store.states, 42)
	assert.NotZero(t, store.states[42].Files["/src/a.ts"].ThreadID)
}

func TestScaffold_FetchesChangedFilesFromLatestIteration(t *testing.T) {
	store := newFakeStateStore()
	threads := &fakeThreadClient{
		iterations: []model.Iteration{{ID: 1}, {ID: 3}, {ID: 2}},
		changes: []model.IterationChange{
			{Path: "/src/a.ts", ChangeTrackingID: 17},
			{Path: "utils/c.ts", ChangeTrackingID: 18},
		},
	}
	svc := NewScaffoldService(store, threads, io.Discard)

	state, err := svc.Scaffold(context.Background(), ScaffoldRequest{PRID: 42})
	require.NoError(t, err)
	require.NotNil(t, state)

	assert.Equal(t, 3, state.LatestIterationID)
	require.Contains(t, state.Files, "/src/a.ts")
	require.Contains(t, state.Files, "/utils/c.ts")
	assert.Equal(t, 17, state.Files["/src/a.ts"].ChangeTrackingID)
	assert.Equal(t, 18, state.Files["/utils/c.ts"].ChangeTrackingID)
	assert.Equal(t, 2+2+1, threads.creations())
}
