package cli

import (
	"github.com/spf13/cobra"

	"github.com/rkoval/revthread/internal/application"
)

var statusDryRun bool

var statusCmd = &cobra.Command{
	Use:   "status <pr-id> <file> <status>",
	Short: "Set a file's review status and cascade the derived updates",
	Long: `Sets the review status of one file (unreviewed, in-progress, approved, or
needs-work), recomputes the owning folder's and the overall PR's derived
statuses, updates the corresponding remote threads, and persists the state.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		prID, err := parsePRID(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		threads, err := newThreadClient(cfg)
		if err != nil {
			return err
		}

		history, closeHistory := openHistory(cfg)
		defer closeHistory()

		svc := application.NewCascadeService(newStateStore(cfg), threads, history)
		return svc.SetFileStatus(cmd.Context(), prID, args[1], args[2], cfg.PullRequestURL(prID), statusDryRun)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusDryRun, "dry-run", false, "compute and log the updates without network I/O or persisting state")
}
