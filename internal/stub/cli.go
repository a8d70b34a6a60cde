package stub

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"mambaprobe/internal/condactx"
)

// Version is reported by --version and info
var Version = "0.0.0-stub"

// ErrTransactionsUnsupported is returned for any request that would change an environment
var ErrTransactionsUnsupported = errors.New("transactions are not supported by this installer")

// GlobalFlags are accepted by every subcommand
type GlobalFlags struct {
	DryRun  bool `help:"Only display what would have been done"`
	JSON    bool `help:"Report all output as json" name:"json"`
	NoRC    bool `help:"Disable the use of configuration files" name:"no-rc"`
	Offline bool `help:"Force use cached repodata"`
	Quiet   bool `help:"Quiet mode (print less output)" short:"q"`
	Verbose int  `help:"Enable verbose mode (higher verbosity with multiple -v, e.g. -vvv)" short:"v" type:"counter"`
	Yes     bool `help:"Automatically answer yes on all questions" short:"y"`
}

// TransactionFlags are shared by install, create, update and remove
type TransactionFlags struct {
	GlobalFlags `embed:""`

	CACertPath            string   `help:"Path for CA certificate" name:"cacert-path"`
	Channel               []string `help:"Channel to use (repeatable)" short:"c"`
	ContextFormat         string   `help:"Format of --print-context-only output" enum:"json,markers" default:"json"`
	File                  []string `help:"File (yaml, explicit or plain) (repeatable)" short:"f"`
	Name                  string   `help:"Name of the prefix" short:"n"`
	OverrideChannels      bool     `help:"Override channels"`
	Prefix                string   `help:"Path to the prefix" short:"p"`
	PrintConfigOnly       bool     `help:"Print the resolved configuration as YAML and exit"`
	PrintContextOnly      bool     `help:"Print the resolved context and exit"`
	Specs                 []string `arg:"" optional:"" help:"Specs to act on"`
	SSLVerify             bool     `help:"Enable or disable SSL verification" name:"ssl-verify" default:"true"`
	StrictChannelPriority bool     `help:"Enable strict channel priority"`
}

// CLI is the command-line surface of the reference installer
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`

	Create  CreateCmd  `cmd:"" help:"Create new environment"`
	Info    InfoCmd    `cmd:"" help:"Information about the installer"`
	Install InstallCmd `cmd:"" help:"Install packages in active environment"`
	List    ListCmd    `cmd:"" help:"List packages in active environment"`
	Remove  RemoveCmd  `cmd:"" help:"Remove packages from active environment"`
	Update  UpdateCmd  `cmd:"" help:"Update packages in active environment"`
}

// runtime carries the process boundary into command Run methods
type runtime struct {
	resolver *condactx.Resolver
	stderr   io.Writer
	stdout   io.Writer
}

type exitCode int

// Main runs the installer with args (without the program name) and returns
// the process exit status
func Main(args []string, stdout, stderr io.Writer, lookupEnv condactx.LookupEnv) (status int) {
	defer func() {
		if r := recover(); r != nil {
			code, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			status = int(code)
		}
	}()

	rt := &runtime{
		resolver: condactx.NewResolver(lookupEnv),
		stderr:   stderr,
		stdout:   stdout,
	}

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("micromamba"),
		kong.Description("Reference installer that reports its resolved context"),
		kong.Vars{"version": Version},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitCode(code)) }),
		kong.Bind(rt),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
