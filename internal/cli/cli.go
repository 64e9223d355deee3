package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/buildinfo"
	"github.com/matzehuels/gridkit/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gridkit"

	// configFile is the file name looked up in the config directory.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gridkit arranges items on a column grid",
		Long: `gridkit is a grid layout engine. It places rectangular items on a grid with a
fixed number of columns and handles drag-to-move, resize, collisions,
compaction and responsive breakpoints.

Layouts are JSON or YAML documents. Grid options come from --config or from
` + "`gridkit config path`" + ` when that file exists.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "grid config file (toml, yaml or json)")

	// Register all subcommands
	root.AddCommand(c.compactCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.syncCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options
// =============================================================================

// loadOptions reads --config, falling back to the default config file and
// then to built-in defaults.
func (c *CLI) loadOptions() (config.Options, error) {
	path := c.configPath
	if path == "" {
		def, err := defaultConfigPath()
		if err == nil {
			if _, statErr := os.Stat(def); statErr == nil {
				path = def
			} else if !errors.Is(statErr, fs.ErrNotExist) {
				return config.Options{}, statErr
			}
		}
	}

	var opts config.Options
	if path != "" {
		var err error
		if opts, err = config.Load(path); err != nil {
			return config.Options{}, err
		}
		c.Logger.Debug("loaded config", "path", path)
	}
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return config.Options{}, err
	}
	return opts, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/gridkit/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultConfigPath returns the config file read when --config is not set.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}
