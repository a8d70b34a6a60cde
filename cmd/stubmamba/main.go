package main

import (
	"os"

	"mambaprobe/internal/stub"
)

// Version is injected at build time via ldflags
// Example: -ldflags="-X main.Version=v1.0.0"
var Version = ""

func main() {
	if Version != "" {
		stub.Version = Version
	}
	os.Exit(stub.Main(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}
