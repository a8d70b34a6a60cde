// Package condactx resolves the run-time context of a conda-compatible installer
// from command-line options, spec files and environment variables, and renders it
// the way micromamba does for --print-context-only and --print-config-only.
//
// Precedence follows micromamba: explicit flags win, then environment variables
// (CONDA_CHANNELS, CONDA_PKGS_DIRS, CONDA_SAFETY_CHECKS, CONDA_EXTRA_SAFETY_CHECKS,
// MAMBA_ROOT_PREFIX, CONDA_PREFIX), then spec file content, then built-in defaults.
package condactx
