package stub

import (
	"fmt"

	"mambaprobe/internal/condactx"
)

// InstallCmd installs specs into an existing environment
type InstallCmd struct {
	TransactionFlags `embed:""`
}

// Run executes install
func (c *InstallCmd) Run(rt *runtime) error {
	return rt.transaction(&c.TransactionFlags)
}

// CreateCmd creates a new environment
type CreateCmd struct {
	TransactionFlags `embed:""`
}

// Run executes create
func (c *CreateCmd) Run(rt *runtime) error {
	return rt.transaction(&c.TransactionFlags)
}

// UpdateCmd updates specs in an environment
type UpdateCmd struct {
	TransactionFlags `embed:""`
}

// Run executes update
func (c *UpdateCmd) Run(rt *runtime) error {
	return rt.transaction(&c.TransactionFlags)
}

// RemoveCmd removes specs from an environment
type RemoveCmd struct {
	TransactionFlags `embed:""`
}

// Run executes remove
func (c *RemoveCmd) Run(rt *runtime) error {
	return rt.transaction(&c.TransactionFlags)
}

// InfoCmd prints installer information
type InfoCmd struct {
	GlobalFlags `embed:""`
}

// Run executes info
func (c *InfoCmd) Run(rt *runtime) error {
	ctx, err := rt.resolver.Resolve(condactx.Options{Offline: c.Offline, SSLVerify: true})
	if err != nil {
		return err
	}

	info := map[string]any{
		"channels":    ctx.Channels,
		"offline":     ctx.Offline,
		"pkgs_dirs":   ctx.PkgsDirs,
		"platform":    ctx.Platform,
		"root_prefix": ctx.RootPrefix,
		"version":     Version,
	}

	if c.JSON {
		return writeJSON(rt, info)
	}

	fmt.Fprintf(rt.stdout, "       version : %s\n", Version)
	fmt.Fprintf(rt.stdout, "      platform : %s\n", ctx.Platform)
	fmt.Fprintf(rt.stdout, "   root prefix : %s\n", ctx.RootPrefix)
	fmt.Fprintf(rt.stdout, "     pkgs dirs : %v\n", ctx.PkgsDirs)
	return nil
}

// ListCmd lists installed packages; the reference installer never has any
type ListCmd struct {
	GlobalFlags `embed:""`

	Name   string `help:"Name of the prefix" short:"n"`
	Prefix string `help:"Path to the prefix" short:"p"`
}

// Run executes list
func (c *ListCmd) Run(rt *runtime) error {
	ctx, err := rt.resolver.Resolve(condactx.Options{Name: c.Name, Prefix: c.Prefix, SSLVerify: true})
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(rt, []any{})
	}
	fmt.Fprintf(rt.stdout, "List of packages in environment: %q\n", ctx.TargetPrefix)
	return nil
}

func (rt *runtime) transaction(f *TransactionFlags) error {
	ctx, err := rt.resolver.Resolve(f.options())
	if err != nil {
		return err
	}

	switch {
	case f.PrintContextOnly:
		return condactx.Render(rt.stdout, ctx, condactx.Format(f.ContextFormat))
	case f.PrintConfigOnly:
		return condactx.RenderConfig(rt.stdout, ctx)
	default:
		return ErrTransactionsUnsupported
	}
}

func (f *TransactionFlags) options() condactx.Options {
	return condactx.Options{
		AlwaysYes:             f.Yes,
		CACertPath:            f.CACertPath,
		Channels:              f.Channel,
		DryRun:                f.DryRun,
		Files:                 f.File,
		JSON:                  f.JSON,
		Name:                  f.Name,
		NoRC:                  f.NoRC,
		Offline:               f.Offline,
		OverrideChannels:      f.OverrideChannels,
		Prefix:                f.Prefix,
		Quiet:                 f.Quiet,
		Specs:                 f.Specs,
		SSLVerify:             f.SSLVerify,
		StrictChannelPriority: f.StrictChannelPriority,
		Verbosity:             f.Verbose,
	}
}

func writeJSON(rt *runtime, v any) error {
	if err := condactx.EncodeJSON(rt.stdout, v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
