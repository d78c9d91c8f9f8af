package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rkoval/revthread/internal/adapter/driven/azdo"
	"github.com/rkoval/revthread/internal/adapter/driven/jsonstate"
	"github.com/rkoval/revthread/internal/adapter/driven/sqlite"
	"github.com/rkoval/revthread/internal/config"
	"github.com/rkoval/revthread/internal/domain/port/driven"
)

func parsePRID(arg string) (int, error) {
	prID, err := strconv.Atoi(arg)
	if err != nil || prID <= 0 {
		return 0, fmt.Errorf("invalid PR id %q: expected a positive integer", arg)
	}
	return prID, nil
}

func newThreadClient(cfg *config.Config) (*azdo.Client, error) {
	if !cfg.HasDevOpsCredentials() {
		return nil, fmt.Errorf("missing code host configuration: set REVTHREAD_ORG_URL, REVTHREAD_PROJECT, REVTHREAD_REPO_ID, and REVTHREAD_PAT")
	}
	return azdo.NewClient(azdo.ClientConfig{
		OrgURL:          cfg.OrgURL,
		Project:         cfg.Project,
		RepositoryID:    cfg.RepositoryID,
		PAT:             cfg.PAT,
		Timeout:         cfg.HTTPTimeout,
		RetryMaxElapsed: cfg.RetryMaxElapsed,
	}), nil
}

func newStateStore(cfg *config.Config) *jsonstate.Store {
	return jsonstate.NewStore(cfg.StateDir)
}

// openHistory opens the audit-log store. History is best-effort for cascade
// commands: open or migration failures degrade to a nil store with a
// warning instead of failing the command.
func openHistory(cfg *config.Config) (driven.HistoryStore, func()) {
	db, err := sqlite.NewDB(cfg.HistoryDBPath)
	if err != nil {
		slog.Warn("history database unavailable, cascade events will not be recorded", "path", cfg.HistoryDBPath, "error", err)
		return nil, func() {}
	}

	if err := sqlite.RunMigrations(db.Writer); err != nil {
		slog.Warn("history migrations failed, cascade events will not be recorded", "path", cfg.HistoryDBPath, "error", err)
		db.Close()
		return nil, func() {}
	}

	return sqlite.NewHistoryRepo(db), func() {
		if err := db.Close(); err != nil {
			slog.Warn("error closing history database", "error", err)
		}
	}
}
