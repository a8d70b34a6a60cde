package cmd

import (
	"fmt"

	"mambaprobe/internal/specfile"
)

// SpecfileCmd manages spec files
type SpecfileCmd struct {
	Parse SpecfileParseCmd `cmd:"parse" help:"Parse a spec file and print what an installer would read from it"`
	Write SpecfileWriteCmd `cmd:"write" help:"Write package names to a new spec file"`
}

// SpecfileWriteCmd writes a plain spec file
type SpecfileWriteCmd struct {
	Dir   string   `help:"Base directory for the spec file workspace (default: home directory)"`
	Names []string `arg:"" help:"Package names, one per line in the file"`
}

// Run executes the write command
func (s *SpecfileWriteCmd) Run() error {
	ws, err := specfile.NewWorkspace(s.Dir)
	if err != nil {
		return err
	}

	path, err := ws.Write(s.Names...)
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

// SpecfileParseCmd parses a spec file
type SpecfileParseCmd struct {
	Path string `arg:"" help:"Spec file (plain, @EXPLICIT or YAML environment)" type:"existingfile"`
}

// Run executes the parse command
func (s *SpecfileParseCmd) Run() error {
	f, err := specfile.Parse(s.Path)
	if err != nil {
		return err
	}

	return printValue("json", f)
}
