// Package cli wires configuration, storage and the terminal UI behind the
// tboard command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build holds version information set via ldflags
type Build struct {
	Version string
	Commit  string
	Date    string
}

func (b Build) String() string {
	return fmt.Sprintf("tboard %s (commit: %s, built: %s)", b.Version, b.Commit, b.Date)
}

var (
	configPath string
	ephemeral  bool
	build      = Build{Version: "dev", Commit: "none", Date: "unknown"}
)

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tboard",
		Short: "Terminal kanban board",
		Long: `tboard keeps projects, tasks, tags and users in a local database and
shows each project as a kanban board you can rearrange with the mouse or
the keyboard.`,
		RunE:          runBoard, // Default action is the TUI
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tboard/config.yaml)")
	root.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep data in memory only, starting from the demo workspace")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newConfigCmd())

	root.Version = build.Version
	root.SetVersionTemplate(build.String() + "\n")
	return root
}

// Execute runs the root command
func Execute(b Build) error {
	build = b
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
