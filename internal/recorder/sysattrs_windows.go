//go:build windows

package recorder

import "os/exec"

func detach(_ *exec.Cmd) {}
