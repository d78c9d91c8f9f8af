package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkoval/revthread/internal/config"
)

func TestParsePRID(t *testing.T) {
	id, err := parsePRID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, arg := range []string{"", "abc", "-1", "0", "4.2"} {
		_, err := parsePRID(arg)
		assert.Error(t, err, "input %q", arg)
	}
}

func TestNewThreadClient_RequiresCredentials(t *testing.T) {
	_, err := newThreadClient(&config.Config{OrgURL: "https://dev.azure.com/acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REVTHREAD_PAT")

	client, err := newThreadClient(&config.Config{
		OrgURL:       "https://dev.azure.com/acme",
		Project:      "platform",
		RepositoryID: "repo-id",
		PAT:          "secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
