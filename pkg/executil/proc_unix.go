//go:build unix

package executil

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts the command in its own process group so Stop
// also reaches anything the shell spawned.
func setProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(c *exec.Cmd) {
	if err := syscall.Kill(-c.Process.Pid, syscall.SIGKILL); err != nil {
		_ = c.Process.Kill()
	}
}
