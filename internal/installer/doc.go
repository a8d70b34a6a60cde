// Package installer runs a conda-compatible installer executable and decodes
// what it prints.
//
// Invoker.Run is the raw primitive: it executes the installer with a timeout,
// captures stdout and stderr and turns a non-zero exit into an *ExitError.
// The Install, Create, Remove, Update, List, Info and Shell wrappers add the
// same default arguments the micromamba test helpers use (-y, -c conda-forge,
// --no-rc, --offline, --dry-run) and decode --json, --print-config-only and
// --print-context-only output.
package installer
