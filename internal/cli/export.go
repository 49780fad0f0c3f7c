package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tgienger/tboard/internal/transfer"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every project, tag, user and task to a file",
		Example: `  tboard export > backup.json
  tboard export --format yaml -o backup.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := transfer.ParseFormat(format)
			if err != nil {
				return err
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer file.Close()
				w = file
			}

			if err := transfer.Export(w, e.stores, f, timeNow()); err != nil {
				return err
			}
			e.logger.Info("exported", "format", format, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json or yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
