package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <pr-id>",
	Short: "Print the locally persisted review state for a pull request",
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

		state, err := newStateStore(cfg).Load(cmd.Context(), prID)
		if err != nil {
			return err
		}

		out := os.Stdout
		fmt.Fprintf(out, "PR %d (%s/%s) — overall: %s\n", state.PRID, state.Project, state.RepositoryName, state.Overall.Status)
		for _, name := range state.FolderOrder {
			folder := state.Folders[name]
			fmt.Fprintf(out, "  %s — %s\n", name, folder.Status)
			for _, path := range folder.Files {
				if entry, ok := state.Files[path]; ok {
					fmt.Fprintf(out, "    %s — %s\n", path, entry.Status)
				}
			}
		}
		return nil
	},
}
