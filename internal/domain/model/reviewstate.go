package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// RootFolder is the synthetic folder that owns files sitting directly at the
// repository root.
const RootFolder = "root"

var (
	// ErrFileNotFound is returned when a file path is absent from the review state.
	ErrFileNotFound = errors.New("file not found in review state")
	// ErrFolderNotFound is returned when a folder name is absent from the review state.
	ErrFolderNotFound = errors.New("folder not found in review state")
)

// NormalizePath ensures a repository path begins with a leading slash.
// All map keys and lookups go through this, so callers may pass paths with
// or without the slash.
func NormalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// TopLevelFolder returns the first path segment of a normalized repository
// path, or RootFolder for files directly at the root.
func TopLevelFolder(path string) string {
	trimmed := strings.TrimPrefix(NormalizePath(path), "/")
	if idx := strings.Index(trimmed, "/"); idx > 0 {
		return trimmed[:idx]
	}
	return RootFolder
}

// SuggestionEntry identifies one inline suggestion thread on a file.
type SuggestionEntry struct {
	ThreadID   int      `json:"threadId"`
	CommentID  int      `json:"commentId"`
	Line       int      `json:"line"`
	EndLine    int      `json:"endLine"`
	Severity   Severity `json:"severity"`
	OutOfScope bool     `json:"outOfScope"`
	LinkText   string   `json:"linkText"`
	Content    string   `json:"content"`
}

// FileEntry is the review record for a single changed file. ThreadID and
// CommentID are zero until the file's summary thread exists remotely and are
// immutable afterward.
type FileEntry struct {
	ThreadID         int               `json:"threadId"`
	CommentID        int               `json:"commentId"`
	Folder           string            `json:"folder"`
	FileName         string            `json:"fileName"`
	Status           Status            `json:"status"`
	Summary          string            `json:"summary,omitempty"`
	ChangeTrackingID int               `json:"changeTrackingId,omitempty"`
	Suggestions      []SuggestionEntry `json:"suggestions"`

	// PreviousSuggestions distinguishes "never rotated" (nil) from "rotated
	// to zero items" (empty list). Collapsing the two reintroduces a
	// data-loss bug on retried re-reviews.
	PreviousSuggestions *[]SuggestionEntry `json:"previousSuggestions,omitempty"`
}

// RotateSuggestions moves the current suggestions into PreviousSuggestions
// and clears the current list, so a re-review can post fresh suggestion
// threads without destroying the prior round. Rotation is one-way: a retried
// re-review that already rotated (PreviousSuggestions set, current list
// empty) is a no-op, keeping the earlier round intact.
func (f *FileEntry) RotateSuggestions() {
	if f.PreviousSuggestions != nil && len(f.Suggestions) == 0 {
		return
	}
	prev := f.Suggestions
	if prev == nil {
		prev = []SuggestionEntry{}
	}
	f.PreviousSuggestions = &prev
	f.Suggestions = nil
}

// FolderEntry is the review record for one top-level folder. Files holds the
// normalized paths of the folder's members in scaffold order; every entry
// must exist in ReviewState.Files.
type FolderEntry struct {
	ThreadID  int      `json:"threadId"`
	CommentID int      `json:"commentId"`
	Status    Status   `json:"status"`
	Files     []string `json:"files"`
}

// OverallSummary is the review record for the PR-level summary thread.
type OverallSummary struct {
	ThreadID  int    `json:"threadId"`
	CommentID int    `json:"commentId"`
	Status    Status `json:"status"`
}

// ReviewState is the root aggregate persisted per pull request. It is
// created once by the scaffolder and thereafter mutated in place by the
// cascade executor; one local process owns it at a time.
type ReviewState struct {
	PRID              int       `json:"prId"`
	RepositoryID      string    `json:"repositoryId"`
	RepositoryName    string    `json:"repositoryName"`
	Project           string    `json:"project"`
	Organization      string    `json:"organization"`
	LatestIterationID int       `json:"latestIterationId,omitempty"`
	ScaffoldedAt      time.Time `json:"scaffoldedAt"`

	Overall OverallSummary `json:"overall"`

	// Folders/Files are keyed by folder name and normalized file path.
	// FolderOrder/FileOrder preserve insertion order for rendering.
	Folders     map[string]*FolderEntry `json:"folders"`
	FolderOrder []string                `json:"folderOrder"`
	Files       map[string]*FileEntry   `json:"files"`
	FileOrder   []string                `json:"fileOrder"`
}

// NewReviewState creates an empty aggregate for the given PR coordinates.
func NewReviewState(prID int, org, project, repoID, repoName string) *ReviewState {
	return &ReviewState{
		PRID:           prID,
		Organization:   org,
		Project:        project,
		RepositoryID:   repoID,
		RepositoryName: repoName,
		ScaffoldedAt:   time.Now().UTC(),
		Overall:        OverallSummary{Status: StatusUnreviewed},
		Folders:        make(map[string]*FolderEntry),
		Files:          make(map[string]*FileEntry),
	}
}

// AddFile registers a file under its top-level folder, creating the folder
// entry on first use. Both file and folder start unreviewed.
func (s *ReviewState) AddFile(path string) *FileEntry {
	path = NormalizePath(path)
	folder := TopLevelFolder(path)

	if _, ok := s.Folders[folder]; !ok {
		s.Folders[folder] = &FolderEntry{Status: StatusUnreviewed}
		s.FolderOrder = append(s.FolderOrder, folder)
	}

	entry := &FileEntry{
		Folder:   folder,
		FileName: path[strings.LastIndex(path, "/")+1:],
		Status:   StatusUnreviewed,
	}
	s.Files[path] = entry
	s.FileOrder = append(s.FileOrder, path)
	s.Folders[folder].Files = append(s.Folders[folder].Files, path)

	return entry
}

// File looks up a file entry by path, normalizing the path first.
func (s *ReviewState) File(path string) (*FileEntry, error) {
	entry, ok := s.Files[NormalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, NormalizePath(path))
	}
	return entry, nil
}

// Folder looks up a folder entry by name.
func (s *ReviewState) Folder(name string) (*FolderEntry, error) {
	entry, ok := s.Folders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, name)
	}
	return entry, nil
}

// Normalize repairs invariants after deserialization: file map keys and
// folder member lists get their leading slash, and missing order lists are
// rebuilt deterministically (sorted) so older state files stay loadable.
func (s *ReviewState) Normalize() {
	if s.Folders == nil {
		s.Folders = make(map[string]*FolderEntry)
	}

	files := make(map[string]*FileEntry, len(s.Files))
	for path, entry := range s.Files {
		files[NormalizePath(path)] = entry
	}
	s.Files = files

	for _, folder := range s.Folders {
		for i, path := range folder.Files {
			folder.Files[i] = NormalizePath(path)
		}
	}

	for i, path := range s.FileOrder {
		s.FileOrder[i] = NormalizePath(path)
	}

	if len(s.FileOrder) != len(s.Files) {
		s.FileOrder = s.FileOrder[:0]
		for path := range s.Files {
			s.FileOrder = append(s.FileOrder, path)
		}
		sort.Strings(s.FileOrder)
	}

	if len(s.FolderOrder) != len(s.Folders) {
		s.FolderOrder = s.FolderOrder[:0]
		for name := range s.Folders {
			s.FolderOrder = append(s.FolderOrder, name)
		}
		sort.Strings(s.FolderOrder)
	}
}
