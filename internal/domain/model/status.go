package model

import (
	"errors"
	"fmt"
)

// Status is the review status of a file, folder, or the overall PR.
// Folder and overall statuses are always derived from their children and
// never set directly.
type Status string

const (
	StatusUnreviewed Status = "unreviewed"
	StatusInProgress Status = "in-progress"
	StatusApproved   Status = "approved"
	StatusNeedsWork  Status = "needs-work"
)

// ErrUnknownStatus is returned when a status string is outside the four-value enum.
var ErrUnknownStatus = errors.New("unknown review status")

// ParseStatus validates a status string against the closed enum.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusUnreviewed, StatusInProgress, StatusApproved, StatusNeedsWork:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// IsTerminal reports whether the status counts as review-complete for aggregation.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusNeedsWork
}

// ThreadStatus is the lifecycle state of a remote discussion thread.
type ThreadStatus string

const (
	ThreadStatusActive ThreadStatus = "active"
	ThreadStatusClosed ThreadStatus = "closed"
)

// threadStatusFor is the exhaustive mapping from review status to remote
// thread status. Only approval closes a thread.
var threadStatusFor = map[Status]ThreadStatus{
	StatusUnreviewed: ThreadStatusActive,
	StatusInProgress: ThreadStatusActive,
	StatusApproved:   ThreadStatusClosed,
	StatusNeedsWork:  ThreadStatusActive,
}

// ThreadStatus maps the review status to the remote thread status.
func (s Status) ThreadStatus() ThreadStatus {
	if ts, ok := threadStatusFor[s]; ok {
		return ts
	}
	return ThreadStatusActive
}

// Severity classifies a review suggestion.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)
