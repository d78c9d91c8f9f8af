// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	OrgURL          string
	Project         string
	RepositoryID    string
	RepositoryName  string
	PAT             string
	StateDir        string
	HistoryDBPath   string
	HTTPTimeout     time.Duration
	RetryMaxElapsed time.Duration
}

// HasDevOpsCredentials reports whether the config carries everything needed
// to talk to the code host. Local-only commands (show, history, preview)
// work without credentials.
func (c *Config) HasDevOpsCredentials() bool {
	return c.OrgURL != "" && c.Project != "" && c.RepositoryID != "" && c.PAT != ""
}

// PullRequestURL builds the web URL of a PR, used as the base for suggestion
// links in rendered summaries.
func (c *Config) PullRequestURL(prID int) string {
	return fmt.Sprintf("%s/%s/_git/%s/pullrequest/%d", c.OrgURL, c.Project, c.RepositoryName, prID)
}

// Load reads configuration from environment variables and returns a
// validated Config. Code-host variables (REVTHREAD_ORG_URL,
// REVTHREAD_PROJECT, REVTHREAD_REPO_ID, REVTHREAD_REPO_NAME, REVTHREAD_PAT)
// are optional here; commands that need them check HasDevOpsCredentials.
// Optional variables with defaults: REVTHREAD_STATE_DIR (~/.revthread),
// REVTHREAD_HISTORY_DB (<state dir>/revthread.db), REVTHREAD_HTTP_TIMEOUT
// (30s), REVTHREAD_RETRY_MAX_ELAPSED (0 = retries disabled).
func Load() (*Config, error) {
	stateDir := os.Getenv("REVTHREAD_STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory for default state dir: %w", err)
		}
		stateDir = filepath.Join(home, ".revthread")
	}

	historyDB := os.Getenv("REVTHREAD_HISTORY_DB")
	if historyDB == "" {
		historyDB = filepath.Join(stateDir, "revthread.db")
	}

	httpTimeout := 30 * time.Second
	if v, ok := os.LookupEnv("REVTHREAD_HTTP_TIMEOUT"); ok && v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("REVTHREAD_HTTP_TIMEOUT has invalid duration %q: %w", v, err)
		}
		httpTimeout = parsed
	}

	var retryMaxElapsed time.Duration
	if v, ok := os.LookupEnv("REVTHREAD_RETRY_MAX_ELAPSED"); ok && v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("REVTHREAD_RETRY_MAX_ELAPSED has invalid duration %q: %w", v, err)
		}
		retryMaxElapsed = parsed
	}

	return &Config{
		OrgURL:          os.Getenv("REVTHREAD_ORG_URL"),
		Project:         os.Getenv("REVTHREAD_PROJECT"),
		RepositoryID:    os.Getenv("REVTHREAD_REPO_ID"),
		RepositoryName:  os.Getenv("REVTHREAD_REPO_NAME"),
		PAT:             os.Getenv("REVTHREAD_PAT"),
		StateDir:        stateDir,
		HistoryDBPath:   historyDB,
		HTTPTimeout:     httpTimeout,
		RetryMaxElapsed: retryMaxElapsed,
	}, nil
}
