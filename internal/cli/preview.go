package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rkoval/revthread/internal/render"
)

var previewHTML bool

var previewCmd = &cobra.Command{
	Use:   "preview <pr-id> [file]",
	Short: "Render a summary from local state without touching the network",
	Long: `Renders the overall PR summary, or a single file's summary when a file
argument is given, from the locally persisted state. With --html the
markdown is converted to sanitized HTML.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prID, err := parsePRID(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		state, err := newStateStore(cfg).Load(cmd.Context(), prID)
		if err != nil {
			return err
		}

		var md string
		if len(args) == 2 {
			entry, err := state.File(args[1])
			if err != nil {
				return err
			}
			md = render.FileSummary(args[1], entry, cfg.PullRequestURL(prID))
		} else {
			md = render.OverallSummary(state)
		}

		if previewHTML {
			md = render.Preview(md)
		}
		fmt.Fprint(os.Stdout, md)
		return nil
	},
}

func init() {
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "emit sanitized HTML instead of markdown")
}
