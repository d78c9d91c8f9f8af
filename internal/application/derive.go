package application

import (
	"github.com/rkoval/revthread/internal/domain/model"
)

// DeriveFolderStatus computes a folder's status from its files' statuses.
// It is a pure function of the children and never consults the folder's own
// stored status.
func DeriveFolderStatus(state *model.ReviewState, folderName string) (model.Status, error) {
	folder, err := state.Folder(folderName)
	if err != nil {
		return "", err
	}

	statuses := make([]model.Status, 0, len(folder.Files))
	for _, path := range folder.Files {
		if entry, ok := state.Files[path]; ok {
			statuses = append(statuses, entry.Status)
		}
	}

	return deriveFromChildren(statuses), nil
}

// DeriveOverallStatus computes the PR status from all folder statuses. An
// empty state derives to unreviewed.
func DeriveOverallStatus(state *model.ReviewState) model.Status {
	statuses := make([]model.Status, 0, len(state.Folders))
	for _, folder := range state.Folders {
		statuses = append(statuses, folder.Status)
	}
	return deriveFromChildren(statuses)
}

// deriveFromChildren applies the shared aggregation rule. Rules are
// evaluated strictly in order, which gives the precedence
// needs-work > in-progress > approved > unreviewed: a mix of terminal
// statuses with any incomplete sibling always derives to in-progress.
func deriveFromChildren(statuses []model.Status) model.Status {
	if len(statuses) == 0 {
		return model.StatusUnreviewed
	}

	anyStarted := false
	allTerminal := true
	anyNeedsWork := false

	for _, s := range statuses {
		if s != model.StatusUnreviewed {
			anyStarted = true
		}
		if !s.IsTerminal() {
			allTerminal = false
		}
		if s == model.StatusNeedsWork {
			anyNeedsWork = true
		}
	}

	switch {
	case !anyStarted:
		return model.StatusUnreviewed
	case !allTerminal:
		return model.StatusInProgress
	case anyNeedsWork:
		return model.StatusNeedsWork
	default:
		return model.StatusApproved
	}
}
