package cmd

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mambaprobe/internal/condactx"
	"mambaprobe/internal/report"
)

// ContextCmd prints the context the installer resolves for a set of arguments
type ContextCmd struct {
	Args       []string `arg:"" optional:"" help:"Installer arguments (use -- before flags, e.g. -- -n myenv --offline)"`
	Format     string   `help:"Output format: json or yaml" enum:"json,yaml" default:"json"`
	Key        string   `help:"Print only this key of the report" short:"k"`
	NoDefaults bool     `help:"Do not append the default channels and --no-rc"`
	Validate   bool     `help:"Fail when the report does not match the context schema" default:"true" negatable:""`
}

// Run executes the context command
func (s *ContextCmd) Run(cli *CLI) error {
	probe, err := cli.NewProbeService()
	if err != nil {
		return err
	}

	opts := cli.callOptions()
	if s.NoDefaults {
		opts.DefaultChannel = false
		opts.NoRC = false
	}

	r, err := probe.Context(context.Background(), opts, s.Args)
	if err != nil && (s.Validate || r == nil) {
		return err
	}

	if s.Key != "" {
		return s.printKey(r)
	}
	return printValue(s.Format, map[string]any(r))
}

func (s *ContextCmd) printKey(r report.Report) error {
	if !r.Has(s.Key) {
		return fmt.Errorf("%w: %s", report.ErrMissingKey, s.Key)
	}

	// Strings print bare so the output can be used in shell scripts
	if str, ok := r[s.Key].(string); ok && s.Format == "json" {
		fmt.Println(str)
		return nil
	}
	return printValue(s.Format, r[s.Key])
}

// printValue writes v to stdout as indented JSON or YAML
func printValue(format string, v any) error {
	if format == "yaml" {
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	if err := condactx.EncodeJSON(os.Stdout, v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
