//go:build unix

package recorder

import (
	"os/exec"
	"syscall"
)

// detach gives the child its own session so terminal signals aimed at the
// parent never reach it implicitly; shutdown signaling is explicit.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
