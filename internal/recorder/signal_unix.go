//go:build unix

package recorder

import (
	"errors"
	"syscall"
)

// interrupt requests a graceful stop from the child's process group.
func interrupt(pid int) error { return signalGroup(pid, syscall.SIGINT) }

// terminate is the second escalation tier.
func terminate(pid int) error { return signalGroup(pid, syscall.SIGTERM) }

// kill is the unconditional last tier.
func kill(pid int) error { return signalGroup(pid, syscall.SIGKILL) }

// signalGroup signals the process group led by pid. A vanished group or
// process (ESRCH) counts as an already-successful shutdown. Any other
// delivery error falls back to signaling the process directly.
func signalGroup(pid int, sig syscall.Signal) error {
	err := syscall.Kill(-pid, sig)
	if err == nil || errors.Is(err, syscall.ESRCH) {
		return nil
	}
	if derr := syscall.Kill(pid, sig); derr == nil || errors.Is(derr, syscall.ESRCH) {
		return nil
	}
	return err
}
