// Package stub is a reference conda-compatible installer that implements only
// the diagnostic surface: --print-context-only, --print-config-only, info and
// list. It never solves or installs anything, which makes it a hermetic
// stand-in for micromamba when testing the harness.
package stub
