// Package jsonstate implements the StateStore port as one JSON document per
// pull request on the local filesystem.
package jsonstate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/rkoval/revthread/internal/domain/model"
	"github.com/rkoval/revthread/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.StateStore = (*Store)(nil)

// Store persists review states under a single directory, one file per PR.
// It assumes a single local writer; there is no locking.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created lazily on
// the first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(prID int) string {
	return filepath.Join(s.dir, fmt.Sprintf("pr-%d.json", prID))
}

// Load reads and normalizes the state for a PR. A missing file maps to
// driven.ErrStateNotFound so callers can use it as a control-flow signal.
func (s *Store) Load(_ context.Context, prID int) (*model.ReviewState, error) {
	data, err := os.ReadFile(s.path(prID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("PR %d: %w", prID, driven.ErrStateNotFound)
		}
		return nil, fmt.Errorf("reading state for PR %d: %w", prID, err)
	}

	var state model.ReviewState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding state for PR %d: %w", prID, err)
	}

	state.Normalize()
	return &state, nil
}

// Save writes the full state, creating the parent directory if needed. The
// write goes through a temp file and rename so a crash never leaves a
// half-written document behind.
func (s *Store) Save(_ context.Context, state *model.ReviewState) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state for PR %d: %w", state.PRID, err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(s.path(state.PRID), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing state for PR %d: %w", state.PRID, err)
	}

	return nil
}
