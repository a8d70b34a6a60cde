package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"mambaprobe/internal/report"
)

// Diagnostic flags that change what the installer prints
const (
	FlagJSON             = "--json"
	FlagPrintConfigOnly  = "--print-config-only"
	FlagPrintContextOnly = "--print-context-only"
)

// CallOptions tweaks the defaults a wrapper appends
type CallOptions struct {
	// AlwaysYes adds -y to create; the other transactions always pass -y
	AlwaysYes bool
	// DefaultChannel appends the invoker's channels as -c flags
	DefaultChannel bool
	// NoDryRun suppresses --dry-run even when the invoker runs in DRY mode
	NoDryRun bool
	// NoRC appends --no-rc
	NoRC bool
}

// DefaultCallOptions mirrors the keyword defaults of the micromamba helpers
func DefaultCallOptions() CallOptions {
	return CallOptions{
		AlwaysYes:      true,
		DefaultChannel: true,
		NoRC:           true,
	}
}

// Output is a result together with its decoded stdout. Exactly one of
// Context, Config, JSON or Text is set.
type Output struct {
	Config  map[string]any
	Context report.Report
	JSON    any
	Result  *Result
	Text    string
}

// Install runs `install -y <args>` plus the default channel, --no-rc, --offline and --dry-run
func (i *Invoker) Install(ctx context.Context, opts CallOptions, args ...string) (*Output, error) {
	argv := append([]string{"install", "-y"}, compact(args)...)
	argv = i.withChannels(argv, opts)
	argv = withNoRC(argv, opts)
	argv = i.withOffline(argv)
	argv = i.withDryRun(argv, args, opts)
	return i.runAndDecode(ctx, argv)
}

// Create runs `create <args>` plus -y, the default channel, --no-rc, --offline and --dry-run
func (i *Invoker) Create(ctx context.Context, opts CallOptions, args ...string) (*Output, error) {
	argv := append([]string{"create"}, compact(args)...)
	if opts.AlwaysYes {
		argv = append(argv, "-y")
	}
	argv = i.withChannels(argv, opts)
	argv = withNoRC(argv, opts)
	argv = i.withOffline(argv)
	argv = i.withDryRun(argv, args, opts)
	return i.runAndDecode(ctx, argv)
}

// Remove runs `remove -y <args>` plus --dry-run
func (i *Invoker) Remove(ctx context.Context, opts CallOptions, args ...string) (*Output, error) {
	argv := append([]string{"remove", "-y"}, compact(args)...)
	argv = i.withDryRun(argv, args, opts)
	return i.runAndDecode(ctx, argv)
}

// Update runs `update -y <args>` plus --offline, --no-rc, the default channel and --dry-run
func (i *Invoker) Update(ctx context.Context, opts CallOptions, args ...string) (*Output, error) {
	argv := append([]string{"update", "-y"}, compact(args)...)
	argv = i.withOffline(argv)
	argv = withNoRC(argv, opts)
	argv = i.withChannels(argv, opts)
	argv = i.withDryRun(argv, args, opts)
	return i.runAndDecode(ctx, argv)
}

// List runs `list <args>`
func (i *Invoker) List(ctx context.Context, args ...string) (*Output, error) {
	return i.runAndDecode(ctx, append([]string{"list"}, compact(args)...))
}

// Info runs `info <args>`
func (i *Invoker) Info(ctx context.Context, args ...string) (*Output, error) {
	return i.runAndDecode(ctx, append([]string{"info"}, compact(args)...))
}

// Shell runs `shell <args>`
func (i *Invoker) Shell(ctx context.Context, args ...string) (*Output, error) {
	return i.runAndDecode(ctx, append([]string{"shell"}, compact(args)...))
}

// Context runs install with --print-context-only and returns the report
func (i *Invoker) Context(ctx context.Context, args ...string) (report.Report, error) {
	return i.ContextWith(ctx, DefaultCallOptions(), args...)
}

// ContextWith is Context with explicit call options
func (i *Invoker) ContextWith(ctx context.Context, opts CallOptions, args ...string) (report.Report, error) {
	if !slices.Contains(args, FlagPrintContextOnly) {
		args = append(slices.Clone(args), FlagPrintContextOnly)
	}

	out, err := i.Install(ctx, opts, args...)
	if err != nil {
		return nil, err
	}
	return out.Context, nil
}

func (i *Invoker) runAndDecode(ctx context.Context, argv []string) (*Output, error) {
	res, err := i.Run(ctx, argv...)
	if err != nil {
		return &Output{Result: res}, err
	}
	return decodeOutput(argv, res)
}

// decodeOutput picks the decoder from the diagnostic flags in argv
func decodeOutput(argv []string, res *Result) (*Output, error) {
	out := &Output{Result: res}

	switch {
	case slices.Contains(argv, FlagPrintContextOnly):
		r, err := report.Decode([]byte(res.Stdout))
		if err != nil {
			return out, err
		}
		out.Context = r
	case slices.Contains(argv, FlagJSON):
		if err := json.Unmarshal([]byte(res.Stdout), &out.JSON); err != nil {
			return out, fmt.Errorf("failed to decode JSON output from %q: %w", res.Stdout, err)
		}
	case slices.Contains(argv, FlagPrintConfigOnly):
		if err := yaml.Unmarshal([]byte(res.Stdout), &out.Config); err != nil {
			return out, fmt.Errorf("failed to decode config output from %q: %w", res.Stdout, err)
		}
		if out.Config == nil {
			out.Config = map[string]any{}
		}
	default:
		out.Text = res.Stdout
	}
	return out, nil
}

func (i *Invoker) withChannels(argv []string, opts CallOptions) []string {
	if !opts.DefaultChannel {
		return argv
	}
	for _, c := range i.Channels {
		argv = append(argv, "-c", c)
	}
	return argv
}

func (i *Invoker) withOffline(argv []string) []string {
	if i.Offline {
		argv = append(argv, "--offline")
	}
	return argv
}

func (i *Invoker) withDryRun(argv, callerArgs []string, opts CallOptions) []string {
	if i.DryRun == DryRunDry && !opts.NoDryRun && !slices.Contains(callerArgs, "--dry-run") {
		argv = append(argv, "--dry-run")
	}
	return argv
}

func withNoRC(argv []string, opts CallOptions) []string {
	if opts.NoRC {
		argv = append(argv, "--no-rc")
	}
	return argv
}

// compact drops empty arguments
func compact(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
