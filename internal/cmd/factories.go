package cmd

import (
	"os"

	adapterstorage "mambaprobe/internal/adapters/storage"
	"mambaprobe/internal/installer"
	"mambaprobe/internal/logging"
	"mambaprobe/internal/ports"
	"mambaprobe/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	HistoryService *services.HistoryService

	// Internal - for cleanup and run recording
	runRepo ports.RunRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(dbPath string) (*Container, error) {
	runRepo, err := adapterstorage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, err
	}

	return &Container{
		HistoryService: services.NewHistoryService(runRepo, runRepo),
		runRepo:        runRepo,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.runRepo != nil {
		return c.runRepo.Close()
	}
	return nil
}

// NewProbeService locates the installer and wires an invoker for it.
// The installer is resolved from --installer, then $TEST_MAMBA_EXE, then
// the settings file, then ./build/micromamba.
func (c *CLI) NewProbeService() (*services.ProbeService, error) {
	inv, err := c.newInvoker()
	if err != nil {
		return nil, err
	}
	return services.NewProbeService(inv), nil
}

func (c *CLI) newInvoker() (*installer.Invoker, error) {
	exe, err := c.locateInstaller()
	if err != nil {
		return nil, err
	}

	dryRun, err := installer.ParseDryRunMode(os.Getenv(installer.EnvDryRun))
	if err != nil {
		return nil, err
	}

	inv := installer.New(exe)
	inv.DryRun = dryRun
	inv.Timeout = c.Timeout
	if c.settings != nil {
		if len(c.settings.Channels) > 0 {
			inv.Channels = c.settings.Channels
		}
		if c.settings.Offline != nil {
			inv.Offline = *c.settings.Offline
		}
	}
	if !c.NoHistory && c.Container != nil {
		inv.Recorder = c.Container.runRepo
	}

	logging.Logger.Debug("Installer resolved",
		"exe", exe,
		"dry_run", dryRun,
		"timeout", inv.Timeout,
		"record_history", inv.Recorder != nil,
	)
	return inv, nil
}

func (c *CLI) locateInstaller() (string, error) {
	if c.Installer != "" {
		return installer.Locate(fixedEnv(c.Installer), ".")
	}
	if exe, ok := os.LookupEnv(installer.EnvExe); ok && exe != "" {
		return installer.Locate(os.LookupEnv, ".")
	}
	if c.settings != nil && c.settings.Installer != "" {
		return installer.Locate(fixedEnv(c.settings.Installer), ".")
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return installer.Locate(os.LookupEnv, wd)
}

// callOptions returns the wrapper defaults adjusted by settings
func (c *CLI) callOptions() installer.CallOptions {
	opts := installer.DefaultCallOptions()
	if c.settings != nil && c.settings.NoRC != nil {
		opts.NoRC = *c.settings.NoRC
	}
	return opts
}

// fixedEnv answers every lookup of installer.EnvExe with path
func fixedEnv(path string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if key == installer.EnvExe {
			return path, true
		}
		return "", false
	}
}
