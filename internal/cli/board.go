package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tgienger/tboard/internal/config"
	"github.com/tgienger/tboard/internal/ui"
	"github.com/tgienger/tboard/internal/ui/views"
)

// timeNow is replaced in tests
var timeNow = time.Now

func runBoard(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	dbPath := e.cfg.DBPath
	if ephemeral {
		dbPath = "(in memory)"
	}

	app := ui.NewApp(views.Deps{
		Stores:   e.stores,
		Settings: e.kv,
		Logger:   e.logger.With("component", "ui"),
		Board:    e.cfg.Board,
		Paths:    views.Paths{Config: cfgPath, DB: dbPath, Log: e.cfg.LogFile},
		Now:      timeNow,
	})
	defer app.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if e.cfg.Board.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	e.logger.Info("starting", "version", build.Version)
	p := tea.NewProgram(app, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}
