package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkoval/revthread/internal/adapter/driven/sqlite"
)

var historyCmd = &cobra.Command{
	Use:   "history <pr-id>",
	Short: "List recorded cascade events for a pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prID, err := parsePRID(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := sqlite.NewDB(cfg.HistoryDBPath)
		if err != nil {
			return fmt.Errorf("opening history database %s: %w", cfg.HistoryDBPath, err)
		}
		defer db.Close()

		if err := sqlite.RunMigrations(db.Writer); err != nil {
			return err
		}

		events, err := sqlite.NewHistoryRepo(db).ListByPR(cmd.Context(), prID)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Fprintf(os.Stdout, "no events recorded for PR %d\n", prID)
			return nil
		}

		for _, ev := range events {
			fmt.Fprintf(os.Stdout, "%s  %s  %s -> %s  (folder %s, overall %s)\n",
				ev.CreatedAt.Format(time.RFC3339), ev.FilePath,
				ev.OldStatus, ev.NewStatus, ev.FolderStatus, ev.OverallStatus)
		}
		return nil
	},
}
