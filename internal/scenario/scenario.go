package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"
)

// SpecFileToken is replaced in a command by the path of the written spec file
const SpecFileToken = "{spec_file}"

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is one installer invocation and the expectations on its output
type Scenario struct {
	// Absent lists context keys that must not be reported
	Absent  []string `yaml:"absent"`
	Command string   `yaml:"command"`
	// Env overrides environment variables for this invocation only
	Env      map[string]string `yaml:"env"`
	ExitCode int               `yaml:"exit_code"`
	// Expect maps context keys to their expected values
	Expect map[string]any `yaml:"expect"`
	Name   string         `yaml:"name"`
	// SpecFile holds package names written to a spec file for {spec_file}
	SpecFile []string `yaml:"spec_file"`
}

type document struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads and validates the scenarios in a YAML file
func Load(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file: %w", err)
	}
	defer f.Close()

	scenarios, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenarios, nil
}

// Decode reads and validates scenarios. Unknown keys are rejected.
func Decode(r io.Reader) ([]Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no scenarios defined", ErrInvalidScenario)
		}
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}

	if err := validate(doc.Scenarios); err != nil {
		return nil, err
	}
	return doc.Scenarios, nil
}

func validate(scenarios []Scenario) error {
	if len(scenarios) == 0 {
		return fmt.Errorf("%w: no scenarios defined", ErrInvalidScenario)
	}

	var errs []error
	seen := make(map[string]bool, len(scenarios))
	for i, sc := range scenarios {
		if sc.Name == "" {
			errs = append(errs, fmt.Errorf("%w: scenario %d has no name", ErrInvalidScenario, i+1))
		} else if seen[sc.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate name %q", ErrInvalidScenario, sc.Name))
		}
		seen[sc.Name] = true

		if err := sc.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %w", ErrInvalidScenario, sc.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (sc *Scenario) validate() error {
	if strings.TrimSpace(sc.Command) == "" {
		return errors.New("command is required")
	}
	if sc.ExitCode < 0 {
		return fmt.Errorf("exit_code %d is negative", sc.ExitCode)
	}

	hasToken := strings.Contains(sc.Command, SpecFileToken)
	switch {
	case hasToken && len(sc.SpecFile) == 0:
		return fmt.Errorf("command uses %s but spec_file is empty", SpecFileToken)
	case !hasToken && len(sc.SpecFile) > 0:
		return fmt.Errorf("spec_file is set but command does not use %s", SpecFileToken)
	}

	if _, err := shlex.Split(sc.Command); err != nil {
		return fmt.Errorf("failed to split command: %w", err)
	}
	return nil
}

// Args splits the command into installer arguments, substituting specFile
// for every {spec_file} token
func (sc *Scenario) Args(specFile string) ([]string, error) {
	args, err := shlex.Split(sc.Command)
	if err != nil {
		return nil, fmt.Errorf("failed to split command %q: %w", sc.Command, err)
	}
	for i, arg := range args {
		args[i] = strings.ReplaceAll(arg, SpecFileToken, specFile)
	}
	return args, nil
}

// NeedsReport reports whether the installer output has to be decoded
func (sc *Scenario) NeedsReport() bool {
	return len(sc.Expect) > 0 || len(sc.Absent) > 0
}
