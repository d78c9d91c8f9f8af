package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus_Valid(t *testing.T) {
	for _, s := range []string{"unreviewed", "in-progress", "approved", "needs-work"} {
		parsed, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), parsed)
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, s := range []string{"", "done", "APPROVED", "in progress"} {
		_, err := ParseStatus(s)
		assert.ErrorIs(t, err, ErrUnknownStatus, "input %q", s)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusUnreviewed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusNeedsWork.IsTerminal())
}

func TestStatus_ThreadStatus(t *testing.T) {
	// Only approval closes the remote thread.
	assert.Equal(t, ThreadStatusClosed, StatusApproved.ThreadStatus())
	assert.Equal(t, ThreadStatusActive, StatusUnreviewed.ThreadStatus())
	assert.Equal(t, ThreadStatusActive, StatusInProgress.ThreadStatus())
	assert.Equal(t, ThreadStatusActive, StatusNeedsWork.ThreadStatus())
}
