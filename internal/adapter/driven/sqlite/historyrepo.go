package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rkoval/revthread/internal/domain/model"
	"github.com/rkoval/revthread/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HistoryStore = (*HistoryRepo)(nil)

// HistoryRepo is the SQLite implementation of the HistoryStore port.
type HistoryRepo struct {
	db *DB
}

// NewHistoryRepo creates a HistoryRepo backed by the given DB.
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Append inserts one review event. CreatedAt defaults to now when unset.
func (r *HistoryRepo) Append(ctx context.Context, event model.ReviewEvent) error {
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO review_events (pr_id, file_path, old_status, new_status, folder_status, overall_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.Writer.ExecContext(ctx, query,
		event.PRID, event.FilePath,
		string(event.OldStatus), string(event.NewStatus),
		string(event.FolderStatus), string(event.OverallStatus),
		createdAt.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert review event for PR %d: %w", event.PRID, err)
	}

	return nil
}

// ListByPR returns all events for a PR, oldest first.
func (r *HistoryRepo) ListByPR(ctx context.Context, prID int) ([]model.ReviewEvent, error) {
	const query = `
		SELECT id, pr_id, file_path, old_status, new_status, folder_status, overall_status, created_at
		FROM review_events
		WHERE pr_id = ?
		ORDER BY id
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, prID)
	if err != nil {
		return nil, fmt.Errorf("query review events for PR %d: %w", prID, err)
	}
	defer rows.Close()

	var events []model.ReviewEvent
	for rows.Next() {
		var ev model.ReviewEvent
		var createdAt string

		if err := rows.Scan(
			&ev.ID, &ev.PRID, &ev.FilePath,
			&ev.OldStatus, &ev.NewStatus, &ev.FolderStatus, &ev.OverallStatus,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}

		ev.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}

		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review events: %w", err)
	}

	return events, nil
}
