//go:build !unix

package executil

import "os/exec"

func setProcessGroup(*exec.Cmd) {}

func killProcessGroup(c *exec.Cmd) {
	_ = c.Process.Kill()
}
