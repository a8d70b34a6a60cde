package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mambaprobe/internal/scenario"
	"mambaprobe/internal/services"
	"mambaprobe/internal/theme"
)

// CheckCmd runs a scenario file and reports each scenario
type CheckCmd struct {
	File    string `arg:"" help:"Scenario file (YAML)" type:"existingfile"`
	Format  string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Jobs    int    `help:"Maximum concurrent installer invocations" short:"j" default:"4"`
	WorkDir string `help:"Directory for spec file workspaces (default: home directory)"`
}

// checkResultJSON is the JSON shape of one scenario result
type checkResultJSON struct {
	DurationMS int64    `json:"duration_ms"`
	ExitCode   int      `json:"exit_code"`
	Failures   []string `json:"failures"`
	Name       string   `json:"name"`
	Passed     bool     `json:"passed"`
}

// Run executes the check command
func (s *CheckCmd) Run(cli *CLI) error {
	probe, err := cli.NewProbeService()
	if err != nil {
		return err
	}

	summary, err := probe.Check(context.Background(), services.CheckParams{
		Jobs:    s.Jobs,
		Path:    s.File,
		WorkDir: s.WorkDir,
	})
	if err != nil {
		return err
	}

	if s.Format == "json" {
		if err := s.printJSON(summary); err != nil {
			return err
		}
	} else {
		s.printTable(summary)
	}

	if !summary.OK() {
		return fmt.Errorf("%d of %d scenarios failed", summary.Failed, len(summary.Results))
	}
	return nil
}

func (s *CheckCmd) printJSON(summary *services.CheckSummary) error {
	results := make([]checkResultJSON, len(summary.Results))
	for i, r := range summary.Results {
		results[i] = checkResultJSON{
			DurationMS: r.Duration.Milliseconds(),
			ExitCode:   r.ExitCode,
			Failures:   failureMessages(r),
			Name:       r.Name,
			Passed:     r.Passed,
		}
	}

	return printValue("json", map[string]any{
		"failed":  summary.Failed,
		"passed":  summary.Passed,
		"results": results,
	})
}

func (s *CheckCmd) printTable(summary *services.CheckSummary) {
	t := theme.NewTable("SCENARIO", "RESULT", "EXIT", "DURATION", "DETAILS")
	for _, r := range summary.Results {
		t.Row(
			r.Name,
			theme.Status(r.Passed),
			theme.ExitCode(r.ExitCode),
			r.Duration.Round(time.Millisecond).String(),
			strings.Join(failureMessages(r), "\n"),
		)
	}
	fmt.Println(t.String())

	fmt.Printf("\n%s %d passed, %d failed\n",
		theme.TitleStyle.Render("Total:"), summary.Passed, summary.Failed)
}

func failureMessages(r scenario.Result) []string {
	msgs := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		msgs[i] = f.Error()
	}
	return msgs
}
