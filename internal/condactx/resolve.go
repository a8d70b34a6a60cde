package condactx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"mambaprobe/internal/specfile"
)

var (
	ErrInvalidBool         = errors.New("invalid boolean value")
	ErrInvalidSafetyChecks = errors.New("invalid safety checks value")
	ErrPrefixAndName       = errors.New("cannot set both prefix and name")
)

// defaultCertLocations are probed in order when no CA bundle is given
var defaultCertLocations = []string{
	"/etc/ssl/certs/ca-certificates.crt",
	"/etc/pki/tls/certs/ca-bundle.crt",
	"/etc/ssl/ca-bundle.pem",
	"/etc/pki/tls/cacert.pem",
	"/etc/pki/ca-trust/extracted/pem/tls-ca-bundle.pem",
	"/etc/ssl/cert.pem",
}

// Options holds the command-line inputs of one invocation
type Options struct {
	AlwaysYes             bool
	CACertPath            string
	Channels              []string
	DryRun                bool
	Files                 []string
	JSON                  bool
	Name                  string
	NoRC                  bool
	Offline               bool
	OverrideChannels      bool
	Prefix                string
	Quiet                 bool
	Specs                 []string
	SSLVerify             bool
	StrictChannelPriority bool
	Verbosity             int
}

// LookupEnv has the signature of os.LookupEnv
type LookupEnv func(key string) (string, bool)

// Resolver turns Options into a Context
type Resolver struct {
	CertLocations []string
	HomeDir       func() (string, error)
	LookupEnv     LookupEnv
}

// NewResolver creates a Resolver reading the given environment
func NewResolver(lookupEnv LookupEnv) *Resolver {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &Resolver{
		CertLocations: defaultCertLocations,
		HomeDir:       os.UserHomeDir,
		LookupEnv:     lookupEnv,
	}
}

// Resolve computes the context for opts
func (r *Resolver) Resolve(opts Options) (*Context, error) {
	if opts.Name != "" && opts.Prefix != "" {
		return nil, ErrPrefixAndName
	}

	rootPrefix, err := r.rootPrefix()
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		AlwaysYes:             opts.AlwaysYes,
		DryRun:                opts.DryRun,
		Files:                 nonNil(opts.Files),
		JSON:                  opts.JSON,
		NoRC:                  opts.NoRC,
		Offline:               opts.Offline,
		OverrideChannels:      opts.OverrideChannels,
		Platform:              Platform(),
		Quiet:                 opts.Quiet,
		RootPrefix:            rootPrefix,
		Specs:                 append([]string{}, opts.Specs...),
		StrictChannelPriority: opts.StrictChannelPriority,
		Verbosity:             opts.Verbosity,
	}

	files, err := specfile.ParseFiles(opts.Files)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	var fileChannels []string
	for _, f := range files {
		if f.Kind == specfile.KindEnvironment {
			// Environment dependencies replace the command line specs
			ctx.Specs = append([]string{}, f.Specs...)
		} else {
			ctx.Specs = append(ctx.Specs, f.Specs...)
		}
		fileChannels = append(fileChannels, f.Channels...)
		if name == "" && opts.Prefix == "" && f.Name != "" {
			name = f.Name
		}
	}

	ctx.EnvName = name
	ctx.TargetPrefix = r.targetPrefix(rootPrefix, name, opts.Prefix)
	// File channels count as explicit channels, so CONDA_CHANNELS only
	// applies when neither -c nor the files name any
	ctx.Channels = r.channels(append(slices.Clone(opts.Channels), fileChannels...))
	ctx.PkgsDirs = r.pkgsDirs(rootPrefix)
	ctx.SSLVerify = r.sslVerify(opts)

	if ctx.SafetyChecks, err = r.safetyChecks(); err != nil {
		return nil, err
	}
	if ctx.ExtraSafetyChecks, err = r.extraSafetyChecks(); err != nil {
		return nil, err
	}

	return ctx, nil
}

func (r *Resolver) rootPrefix() (string, error) {
	if v, ok := r.LookupEnv(EnvRootPrefix); ok && v != "" {
		return r.expandHome(v), nil
	}

	home, err := r.HomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "micromamba"), nil
}

func (r *Resolver) targetPrefix(rootPrefix, name, prefix string) string {
	switch {
	case name == "base":
		return rootPrefix
	case name != "":
		return filepath.Join(rootPrefix, "envs", name)
	case prefix != "":
		return r.expandHome(prefix)
	}

	if v, ok := r.LookupEnv(EnvPrefix); ok {
		return v
	}
	return ""
}

func (r *Resolver) channels(explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	if v, ok := r.LookupEnv(EnvChannels); ok {
		return splitList(v)
	}
	return []string{}
}

func (r *Resolver) pkgsDirs(rootPrefix string) []string {
	if v, ok := r.LookupEnv(EnvPkgsDirs); ok {
		if dirs := splitList(v); len(dirs) > 0 {
			for i, d := range dirs {
				dirs[i] = r.expandHome(d)
			}
			return dirs
		}
	}
	return []string{filepath.Join(rootPrefix, "pkgs")}
}

func (r *Resolver) sslVerify(opts Options) string {
	if !opts.SSLVerify {
		return SSLVerifyDisabled
	}
	if opts.CACertPath != "" {
		return opts.CACertPath
	}
	for _, loc := range r.CertLocations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return SSLVerifyDisabled
}

func (r *Resolver) safetyChecks() (string, error) {
	v, ok := r.LookupEnv(EnvSafetyChecks)
	if !ok || v == "" {
		return SafetyChecksWarn, nil
	}

	switch level := strings.ToLower(strings.TrimSpace(v)); level {
	case SafetyChecksDisabled, SafetyChecksEnabled, SafetyChecksWarn:
		return level, nil
	default:
		return "", fmt.Errorf("%w %s=%q", ErrInvalidSafetyChecks, EnvSafetyChecks, v)
	}
}

func (r *Resolver) extraSafetyChecks() (bool, error) {
	v, ok := r.LookupEnv(EnvExtraSafetyChecks)
	if !ok || v == "" {
		return false, nil
	}

	b, err := ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", EnvExtraSafetyChecks, err)
	}
	return b, nil
}

func (r *Resolver) expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := r.HomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[1:])
}

// ParseBool accepts the spellings conda uses for boolean settings
func ParseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "y":
		return true, nil
	case "0", "false", "no", "off", "n":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidBool, v)
}

// splitList splits a comma-separated value, dropping empty entries
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
