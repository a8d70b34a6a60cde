// Package scenario loads declarative installer checks from YAML and runs them
// concurrently against an installer.Invoker.
package scenario
