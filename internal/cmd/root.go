package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"mambaprobe/internal/config"
	"mambaprobe/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	Installer   string           `help:"Installer executable (overrides $TEST_MAMBA_EXE and settings)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	NoHistory   bool             `help:"Do not record installer runs"`
	Timeout     time.Duration    `help:"Timeout for one installer invocation" default:"30s"`

	Check    CheckCmd    `cmd:"check" help:"Run a scenario file against the installer"`
	Context  ContextCmd  `cmd:"context" help:"Print the context the installer resolves"`
	History  HistoryCmd  `cmd:"history" help:"Inspect recorded installer runs"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (meta)"`
	Specfile SpecfileCmd `cmd:"specfile" help:"Write and parse spec files"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply(kctx *kong.Context) error {
	c.applySettings(func(name string) bool { return flagSet(kctx, name) })

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Export AFTER initialization so child processes append to the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv(logging.EnvDebug, "1")
		if logFilePath != "" {
			os.Setenv(logging.EnvDebugFile, logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv(logging.EnvMaxLogFiles, fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Create container AFTER logging is initialized so the GORM logger has a target
	container, err := NewContainer(config.GetDBPath())
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// applySettings fills options from settings.json.
// Precedence: CLI flags > env vars > settings.json > defaults.
// A setting only applies when its flag was not given and no env var is set.
func (c *CLI) applySettings(isSet func(flag string) bool) {
	if c.settings == nil {
		return
	}

	if !isSet("max-log-files") && c.settings.MaxLogFiles != nil {
		if _, hasEnv := os.LookupEnv(logging.EnvMaxLogFiles); !hasEnv {
			c.MaxLogFiles = *c.settings.MaxLogFiles
		}
	}

	if !c.Debug && c.settings.Debug != nil && *c.settings.Debug {
		if _, hasEnv := os.LookupEnv(logging.EnvDebug); !hasEnv {
			c.Debug = true
		}
	}

	if !isSet("timeout") {
		c.Timeout = c.settings.Timeout(c.Timeout)
	}

	if !c.NoHistory && !c.settings.HistoryEnabled() {
		c.NoHistory = true
	}
}

// flagSet reports whether the named flag appeared on the command line
func flagSet(kctx *kong.Context, name string) bool {
	if kctx == nil {
		return false
	}
	for _, el := range kctx.Path {
		if el.Flag != nil && el.Flag.Name == name {
			return true
		}
	}
	return false
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
