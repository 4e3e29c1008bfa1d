package sync

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/parthalab/krakensync/pkg/config"
	"github.com/parthalab/krakensync/pkg/errors"
	"github.com/parthalab/krakensync/pkg/fswatch"
)

// Overridden in mock tests.
var (
	mirrorPass = Mirror
	watchDir   = fswatch.Watch
)

// Driver runs sync passes for a target. Production mode pushes once; dev
// mode keeps pushing on every local change until the process is
// interrupted or a pass fails.
type Driver struct {
	Target config.Target
	Log    *logrus.Logger
}

// Run executes the driver for its target's mode.
func (d Driver) Run() error {
	fmt.Printf("Syncing %s to %s (%s mode)\n",
		d.Target.LocalDir, d.Target.RemoteDest(), d.Target.Mode)

	if d.Target.Mode == config.Production {
		if err := mirrorPass(d.Target); err != nil {
			return errors.WithContext(err, "sync")
		}
		fmt.Println("Sync complete.")
		return nil
	}

	return d.watchLoop()
}

// watchLoop blocks until the local tree changes, runs one pass, and
// repeats. The first failing pass aborts the loop.
func (d Driver) watchLoop() error {
	events, err := watchDir(d.Target.LocalDir)
	if err != nil {
		rootCause := errors.RootCause(err)
		if dneErr, ok := rootCause.(errors.FileNotFound); ok {
			return errors.NewFriendlyError(
				"Failed to watch files for syncing.\n"+
					"%q doesn't exist.\n\n"+
					"Are you running from the directory containing %q?",
				dneErr.Path, d.Target.LocalDir)
		}
		return errors.WithContext(err, "watch files")
	}

	for range events {
		d.Log.Debug("Filesystem change detected")
		if err := mirrorPass(d.Target); err != nil {
			return errors.WithContext(err, "sync")
		}
		d.Log.WithField("dest", d.Target.RemoteDest()).Info("Synced")
	}
	return nil
}
