package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tgienger/tboard/internal/transfer"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with the contents of an export",
		Long: `Replace all data with the contents of an export file. Both json and
yaml exports are accepted. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer file.Close()
				r = file
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			d, err := transfer.Import(r, e.stores)
			if err != nil {
				return err
			}
			e.logger.Info("imported", "file", args[0], "tasks", len(d.Tasks))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects, %d tags, %d users, %d tasks\n",
				len(d.Projects), len(d.Tags), len(d.Users), len(d.Tasks))
			return nil
		},
	}
}
