package application

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkoval/revthread/internal/domain/model"
)

func TestDeriveFolderStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.Status
		want     model.Status
	}{
		{"all unreviewed", []model.Status{model.StatusUnreviewed, model.StatusUnreviewed}, model.StatusUnreviewed},
		{"one started", []model.Status{model.StatusInProgress, model.StatusUnreviewed}, model.StatusInProgress},
		{"terminal mix with incomplete sibling", []model.Status{model.StatusApproved, model.StatusNeedsWork, model.StatusUnreviewed}, model.StatusInProgress},
		{"all approved", []model.Status{model.StatusApproved, model.StatusApproved}, model.StatusApproved},
		{"all terminal one needs work", []model.Status{model.StatusApproved, model.StatusNeedsWork}, model.StatusNeedsWork},
		{"single needs work", []model.Status{model.StatusNeedsWork}, model.StatusNeedsWork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := make([]string, len(tt.statuses))
			for i := range tt.statuses {
				paths[i] = fmt.Sprintf("/src/file%d.ts", i)
			}
			state := scaffoldedState(1, paths...)
			for i, path := range paths {
				state.Files[path].Status = tt.statuses[i]
			}

			got, err := DeriveFolderStatus(state, "src")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Derivation is pure and idempotent.
			again, err := DeriveFolderStatus(state, "src")
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestDeriveFolderStatus_EmptyFolder(t *testing.T) {
	state := scaffoldedState(1)
	state.Folders["empty"] = &model.FolderEntry{Status: model.StatusUnreviewed}
	state.FolderOrder = append(state.FolderOrder, "empty")

	got, err := DeriveFolderStatus(state, "empty")
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnreviewed, got)
}

func TestDeriveFolderStatus_UnknownFolder(t *testing.T) {
	state := scaffoldedState(1, "/src/a.ts")

	_, err := DeriveFolderStatus(state, "missing")
	assert.ErrorIs(t, err, model.ErrFolderNotFound)
}

func TestDeriveOverallStatus(t *testing.T) {
	state := scaffoldedState(1, "/src/a.ts", "/utils/b.ts")

	// No review activity yet.
	assert.Equal(t, model.StatusUnreviewed, DeriveOverallStatus(state))

	// One folder approved, one in progress: precedence keeps the PR in progress.
	state.Folders["src"].Status = model.StatusApproved
	state.Folders["utils"].Status = model.StatusInProgress
	assert.Equal(t, model.StatusInProgress, DeriveOverallStatus(state))

	// All folders approved.
	state.Folders["utils"].Status = model.StatusApproved
	assert.Equal(t, model.StatusApproved, DeriveOverallStatus(state))

	// Any terminal needs-work wins once everything is terminal.
	state.Folders["src"].Status = model.StatusNeedsWork
	assert.Equal(t, model.StatusNeedsWork, DeriveOverallStatus(state))
}

func TestDeriveOverallStatus_Empty(t *testing.T) {
	state := model.NewReviewState(1, "org", "proj", "rid", "repo")
	assert.Equal(t, model.StatusUnreviewed, DeriveOverallStatus(state))
}
