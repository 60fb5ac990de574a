//go:build windows

package engine

import (
	"os/exec"
	"syscall"
)

const createNoWindow = 0x08000000

// detach keeps mpv from opening a console window.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNoWindow}
}

func killGroup(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
