package model

import "time"

// ReviewEvent is one audit record of a file-status change and the derived
// statuses it produced. Events are append-only.
type ReviewEvent struct {
	ID            int64
	PRID          int
	FilePath      string
	OldStatus     Status
	NewStatus     Status
	FolderStatus  Status
	OverallStatus Status
	CreatedAt     time.Time
}
