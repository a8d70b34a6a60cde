//go:build !unix

package installer

import "os/exec"

func configureProcessGroup(cmd *exec.Cmd) {}
