//go:build windows

package recorder

import (
	"errors"
	"os"
)

// Windows has no process groups or graceful POSIX signals; every tier
// falls through to killing the process.

func interrupt(pid int) error { return signalProcess(pid) }
func terminate(pid int) error { return signalProcess(pid) }
func kill(pid int) error      { return signalProcess(pid) }

func signalProcess(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
