// Package config loads tboard settings from a YAML file and TBOARD_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration
type Config struct {
	DataDir  string      `mapstructure:"data_dir"`
	DBPath   string      `mapstructure:"db_path"`
	LogFile  string      `mapstructure:"log_file"`
	LogLevel string      `mapstructure:"log_level"`
	SeedDemo bool        `mapstructure:"seed_demo"`
	Board    BoardConfig `mapstructure:"board"`
}

// BoardConfig tunes the kanban board
type BoardConfig struct {
	// DropBias is added to an indicator's top row before comparing it with
	// the pointer row, so the upper half of a card means "insert before it"
	DropBias  float64       `mapstructure:"drop_bias"`
	Animation time.Duration `mapstructure:"animation"`
	Mouse     bool          `mapstructure:"mouse"`
}

// LogDisabled as log_file turns logging off
const LogDisabled = "off"

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	dataDir := DefaultDataDir()
	return &Config{
		DataDir:  dataDir,
		DBPath:   filepath.Join(dataDir, "tboard.db"),
		LogFile:  filepath.Join(dataDir, "tboard.log"),
		LogLevel: "info",
		Board: BoardConfig{
			DropBias:  3,
			Animation: 300 * time.Millisecond,
			Mouse:     true,
		},
	}
}

// DefaultDataDir follows the XDG data directory, falling back to
// ~/.local/share
func DefaultDataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "tboard")
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "tboard")
}

// DefaultConfigPath is $XDG_CONFIG_HOME/tboard/config.yaml, or
// ~/.config/tboard/config.yaml
func DefaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tboard", "config.yaml")
}

// Load reads configuration from path (or the default location when path is
// empty) and the environment. A missing default file is not an error; a
// missing explicit file is.
func Load(path string) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("db_path", "")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("seed_demo", def.SeedDemo)
	v.SetDefault("board.drop_bias", def.Board.DropBias)
	v.SetDefault("board.animation", def.Board.Animation)
	v.SetDefault("board.mouse", def.Board.Mouse)

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.LogFile = expandHome(cfg.LogFile)

	// Paths default relative to whatever data_dir ended up being
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "tboard.db")
	}
	switch cfg.LogFile {
	case "":
		cfg.LogFile = filepath.Join(cfg.DataDir, "tboard.log")
	case LogDisabled:
		cfg.LogFile = ""
	}
	if cfg.Board.DropBias < 0 {
		return nil, fmt.Errorf("board.drop_bias must not be negative, got %v", cfg.Board.DropBias)
	}
	if cfg.Board.Animation <= 0 {
		cfg.Board.Animation = def.Board.Animation
	}
	return cfg, nil
}

// WriteDefault writes a commented starter configuration to path
func WriteDefault(path string) error {
	content := `# tboard configuration

# Where the database and log live (defaults to $XDG_DATA_HOME/tboard)
# data_dir: ~/.local/share/tboard
# db_path: ~/.local/share/tboard/tboard.db

# Log file; set to "off" to disable logging
# log_file: ~/.local/share/tboard/tboard.log
log_level: info

# Fill empty collections with a sample workspace on first run
seed_demo: false

board:
  # Rows added to an insertion marker before comparing it with the pointer;
  # 0 compares against the marker row itself
  drop_bias: 3
  # Duration of the card move highlight
  animation: 300ms
  # Enable mouse drag and drop
  mouse: true
`
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
