package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tgienger/tboard/internal/store"
)

var errHasData = errors.New("database already has data (use --force to replace it)")

func newSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with the demo workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			snap := e.stores.Snapshot()
			empty := len(snap.Projects) == 0 && len(snap.Tags) == 0 && len(snap.Users) == 0 && len(snap.Tasks) == 0
			if !empty && !force {
				return errHasData
			}

			demo := store.DemoSeed(timeNow())
			e.stores.Restore(demo)
			e.logger.Info("seeded demo data", "force", force)
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d projects, %d tags, %d users, %d tasks\n",
				len(demo.Projects), len(demo.Tags), len(demo.Users), len(demo.Tasks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace existing data")
	return cmd
}
