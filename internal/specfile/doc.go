// Package specfile writes and reads the package lists handed to a conda-compatible
// installer with --file.
//
// Three formats are understood:
//   - plain: one match spec per line; blank lines and lines starting with '#' or '@' are ignored
//   - explicit: a plain file containing an @EXPLICIT marker, followed by package URLs
//   - environment: a YAML document with name, channels and dependencies (.yml/.yaml)
package specfile
