package sync

import (
	"os"
	"os/exec"

	"github.com/parthalab/krakensync/pkg/config"
)

// execCommand will be overridden in mock tests.
var execCommand = exec.Command

// Mirror runs one pass of the external mirror tool against `target`. The
// tool's output passes through to the user, and a nonzero exit surfaces as
// an *exec.ExitError carrying the tool's status.
func Mirror(target config.Target) error {
	cmd := execCommand(target.MirrorCommand, MirrorArgs(target)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// MirrorArgs assembles the argument list for one sync pass: archive and
// verbose mode, the fixed exclude set, and the local tree's contents
// (trailing slash) into the remote destination.
func MirrorArgs(target config.Target) []string {
	args := []string{"-av"}
	for _, pattern := range config.Excludes {
		args = append(args, "--exclude", pattern)
	}
	return append(args, target.LocalDir+"/", target.RemoteDest())
}
