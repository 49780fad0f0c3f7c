package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tgienger/tboard/internal/config"
	"github.com/tgienger/tboard/internal/db"
	"github.com/tgienger/tboard/internal/logging"
	"github.com/tgienger/tboard/internal/store"
)

// env is what every command runs against
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	kv      store.KV
	stores  *store.Stores
	closers []func() error
}

// setup loads configuration, opens the log and the database, and loads the
// stores. Callers must Close the env.
func setup(opts ...store.Option) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	seed := cfg.SeedDemo
	if ephemeral {
		e.kv = db.NewMemory()
		seed = true
		logger.Info("using in-memory storage")
	} else {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open database: %w", err)
		}
		e.kv = database
		e.closers = append(e.closers, database.Close)
		logger.Info("opened database", "path", cfg.DBPath)
	}

	opts = append([]store.Option{store.WithLogger(logger)}, opts...)
	if seed {
		opts = append(opts, store.WithSeed(store.DemoSeed(timeNow())))
	}
	e.stores = store.Open(e.kv, opts...)
	return e, nil
}

// Close releases the database and the log, newest first
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
