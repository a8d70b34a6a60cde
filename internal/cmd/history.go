package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mambaprobe/internal/domain"
	"mambaprobe/internal/theme"
)

// HistoryCmd inspects recorded installer runs
type HistoryCmd struct {
	List  HistoryListCmd  `cmd:"list" help:"List recorded runs, newest first" default:"1"`
	Prune HistoryPruneCmd `cmd:"prune" help:"Delete all but the newest runs"`
	Show  HistoryShowCmd  `cmd:"show" help:"Show one run including its output"`
}

// runJSON is the JSON shape of a recorded run
type runJSON struct {
	Args       []string  `json:"args"`
	CreatedAt  time.Time `json:"created_at"`
	DurationMS int64     `json:"duration_ms"`
	ExitCode   int       `json:"exit_code"`
	ID         string    `json:"id"`
	Scenario   string    `json:"scenario,omitempty"`
	Stderr     string    `json:"stderr,omitempty"`
	Stdout     string    `json:"stdout,omitempty"`
}

func toRunJSON(r domain.Run, withOutput bool) runJSON {
	out := runJSON{
		Args:       r.Args,
		CreatedAt:  r.CreatedAt,
		DurationMS: r.Duration.Milliseconds(),
		ExitCode:   r.ExitCode,
		ID:         r.ID,
		Scenario:   r.Scenario,
	}
	if withOutput {
		out.Stderr = r.Stderr
		out.Stdout = r.Stdout
	}
	return out
}

// HistoryListCmd lists recorded runs
type HistoryListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of runs to show (0 = all)" short:"l" default:"20"`
}

// Run executes the list command
func (s *HistoryListCmd) Run(cli *CLI) error {
	runs, err := cli.Container.HistoryService.List(context.Background(), s.Limit)
	if err != nil {
		return err
	}

	if s.Format == "json" {
		items := make([]runJSON, len(runs))
		for i, r := range runs {
			items[i] = toRunJSON(r, false)
		}
		return printValue("json", items)
	}

	if len(runs) == 0 {
		fmt.Println(theme.MutedStyle.Render("No runs recorded yet."))
		return nil
	}

	t := theme.NewTable("ID", "WHEN", "SCENARIO", "EXIT", "DURATION", "COMMAND")
	for _, r := range runs {
		t.Row(
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Scenario,
			theme.ExitCode(r.ExitCode),
			r.Duration.String(),
			truncate(strings.Join(r.Args[min(1, len(r.Args)):], " "), 60),
		)
	}
	fmt.Println(t.String())

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	return nil
}

// HistoryShowCmd shows one recorded run
type HistoryShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     string `arg:"" help:"Run ID"`
}

// Run executes the show command
func (s *HistoryShowCmd) Run(cli *CLI) error {
	run, err := cli.Container.HistoryService.Get(context.Background(), s.ID)
	if err != nil {
		return err
	}

	if s.Format == "json" {
		return printValue("json", toRunJSON(*run, true))
	}

	fmt.Printf("Run: %s\n", run.ID)
	fmt.Printf("Created: %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if run.Scenario != "" {
		fmt.Printf("Scenario: %s\n", run.Scenario)
	}
	fmt.Printf("Command: %s\n", run.CommandLine())
	fmt.Printf("Exit Code: %s\n", theme.ExitCode(run.ExitCode))
	fmt.Printf("Duration: %s\n", run.Duration)
	fmt.Printf("\n%s\n%s\n", theme.TitleStyle.Render("stdout:"), run.Stdout)
	fmt.Printf("%s\n%s\n", theme.TitleStyle.Render("stderr:"), run.Stderr)
	return nil
}

// HistoryPruneCmd deletes old runs
type HistoryPruneCmd struct {
	Keep int `help:"Number of newest runs to keep" required:""`
}

// Run executes the prune command
func (s *HistoryPruneCmd) Run(cli *CLI) error {
	deleted, err := cli.Container.HistoryService.Prune(context.Background(), s.Keep)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %d runs\n", deleted)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
