package condactx

import "runtime"

// Environment variables read during resolution
const (
	EnvChannels          = "CONDA_CHANNELS"
	EnvExtraSafetyChecks = "CONDA_EXTRA_SAFETY_CHECKS"
	EnvPkgsDirs          = "CONDA_PKGS_DIRS"
	EnvPrefix            = "CONDA_PREFIX"
	EnvRootPrefix        = "MAMBA_ROOT_PREFIX"
	EnvSafetyChecks      = "CONDA_SAFETY_CHECKS"
)

// SSLVerifyDisabled is the ssl_verify value meaning "do not verify"
const SSLVerifyDisabled = "<false>"

// Safety check levels accepted in CONDA_SAFETY_CHECKS
const (
	SafetyChecksDisabled = "disabled"
	SafetyChecksEnabled  = "enabled"
	SafetyChecksWarn     = "warn"
)

// Context is the resolved configuration of one installer invocation
type Context struct {
	AlwaysYes             bool     `json:"always_yes" yaml:"always_yes"`
	Channels              []string `json:"channels" yaml:"channels"`
	DryRun                bool     `json:"dry_run" yaml:"dry_run"`
	EnvName               string   `json:"env_name" yaml:"env_name"`
	ExtraSafetyChecks     bool     `json:"extra_safety_checks" yaml:"extra_safety_checks"`
	Files                 []string `json:"files" yaml:"files"`
	JSON                  bool     `json:"json" yaml:"json"`
	NoRC                  bool     `json:"no_rc" yaml:"no_rc"`
	Offline               bool     `json:"offline" yaml:"offline"`
	OverrideChannels      bool     `json:"override_channels" yaml:"override_channels"`
	PkgsDirs              []string `json:"pkgs_dirs" yaml:"pkgs_dirs"`
	Platform              string   `json:"platform" yaml:"platform"`
	Quiet                 bool     `json:"quiet" yaml:"quiet"`
	RootPrefix            string   `json:"root_prefix" yaml:"root_prefix"`
	SafetyChecks          string   `json:"safety_checks" yaml:"safety_checks"`
	Specs                 []string `json:"specs" yaml:"specs"`
	SSLVerify             string   `json:"ssl_verify" yaml:"ssl_verify"`
	StrictChannelPriority bool     `json:"strict_channel_priority" yaml:"strict_channel_priority"`
	TargetPrefix          string   `json:"target_prefix" yaml:"target_prefix"`
	Verbosity             int      `json:"verbosity" yaml:"verbosity"`
}

// Config is the user-facing subset printed by --print-config-only
type Config struct {
	Channels          []string `yaml:"channels"`
	ExtraSafetyChecks bool     `yaml:"extra_safety_checks"`
	Offline           bool     `yaml:"offline"`
	PkgsDirs          []string `yaml:"pkgs_dirs"`
	RootPrefix        string   `yaml:"root_prefix"`
	SafetyChecks      string   `yaml:"safety_checks"`
	SSLVerify         string   `yaml:"ssl_verify"`
	TargetPrefix      string   `yaml:"target_prefix"`
}

// Config returns the configuration subset of c
func (c *Context) Config() Config {
	return Config{
		Channels:          c.Channels,
		ExtraSafetyChecks: c.ExtraSafetyChecks,
		Offline:           c.Offline,
		PkgsDirs:          c.PkgsDirs,
		RootPrefix:        c.RootPrefix,
		SafetyChecks:      c.SafetyChecks,
		SSLVerify:         c.SSLVerify,
		TargetPrefix:      c.TargetPrefix,
	}
}

// Platform returns the conda subdir of the running system, e.g. linux-64
func Platform() string {
	return platformFor(runtime.GOOS, runtime.GOARCH)
}

func platformFor(goos, goarch string) string {
	osName := goos
	switch goos {
	case "darwin":
		osName = "osx"
	case "windows":
		osName = "win"
	}

	arch := goarch
	switch goarch {
	case "amd64":
		arch = "64"
	case "386":
		arch = "32"
	case "arm64":
		if goos == "linux" {
			arch = "aarch64"
		}
	}
	return osName + "-" + arch
}
