package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rkoval/revthread/internal/application"
	"github.com/rkoval/revthread/internal/domain/port/driven"
)

var scaffoldDryRun bool

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <pr-id> [file...]",
	Short: "Create the review-thread hierarchy for a pull request",
	Long: `Creates one discussion thread per changed file, one per top-level folder,
and one overall summary thread, then persists the review state locally.
Without explicit file arguments the changed-file list is fetched from the
PR's latest iteration. Re-running against an already-scaffolded PR is a
no-op.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prID, err := parsePRID(args[0])
		if err != nil {
			return err
		}
		files := args[1:]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// A dry run over an explicit file list never touches the network.
		var threads driven.ThreadClient
		if !scaffoldDryRun || len(files) == 0 {
			threads, err = newThreadClient(cfg)
			if err != nil {
				return err
			}
		}

		svc := application.NewScaffoldService(newStateStore(cfg), threads, os.Stdout)
		_, err = svc.Scaffold(cmd.Context(), application.ScaffoldRequest{
			PRID:           prID,
			Organization:   cfg.OrgURL,
			Project:        cfg.Project,
			RepositoryID:   cfg.RepositoryID,
			RepositoryName: cfg.RepositoryName,
			Files:          files,
			DryRun:         scaffoldDryRun,
		})
		return err
	},
}

func init() {
	scaffoldCmd.Flags().BoolVar(&scaffoldDryRun, "dry-run", false, "print the plan without creating any thread")
}
