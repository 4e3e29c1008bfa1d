package sync

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthalab/krakensync/pkg/config"
	"github.com/parthalab/krakensync/pkg/errors"
	"github.com/parthalab/krakensync/pkg/fswatch"
)

func testTarget(mode config.RunMode) config.Target {
	return config.Target{
		LocalDir:      "CelebV-HQ",
		RemoteUser:    "web",
		RemoteHost:    "kraken",
		ProductionDir: "/home/web/partha",
		MirrorCommand: "rsync",
		Mode:          mode,
	}
}

func restoreHooks() {
	mirrorPass = Mirror
	watchDir = fswatch.Watch
}

func TestProductionSyncsExactlyOnce(t *testing.T) {
	defer restoreHooks()

	var passes int
	mirrorPass = func(config.Target) error {
		passes++
		return nil
	}

	var watched bool
	watchDir = func(string) (chan struct{}, error) {
		watched = true
		return nil, nil
	}

	driver := Driver{Target: testTarget(config.Production), Log: logrus.New()}
	assert.NoError(t, driver.Run())
	assert.Equal(t, 1, passes)
	assert.False(t, watched, "production mode shouldn't watch the filesystem")
}

func TestProductionFailurePropagates(t *testing.T) {
	defer restoreHooks()

	expErr := errors.New("connection reset")
	mirrorPass = func(config.Target) error {
		return expErr
	}

	driver := Driver{Target: testTarget(config.Production), Log: logrus.New()}
	err := driver.Run()
	require.Error(t, err)
	assert.Equal(t, expErr, errors.RootCause(err))
}

func TestDevSyncsOncePerEvent(t *testing.T) {
	defer restoreHooks()

	events := make(chan struct{})
	watchDir = func(dir string) (chan struct{}, error) {
		assert.Equal(t, "CelebV-HQ", dir)
		return events, nil
	}

	var passes int
	passDone := make(chan struct{}, 1)
	mirrorPass = func(config.Target) error {
		passes++
		passDone <- struct{}{}
		return nil
	}

	driver := Driver{Target: testTarget(config.Dev), Log: logrus.New()}
	done := make(chan error)
	go func() {
		done <- driver.Run()
	}()

	// Each event triggers its own pass, and the pass completes before the
	// driver waits for the next event.
	numEvents := 3
	for i := 0; i < numEvents; i++ {
		events <- struct{}{}
		<-passDone
		assert.Equal(t, i+1, passes)
	}

	close(events)
	assert.NoError(t, <-done)
	assert.Equal(t, numEvents, passes)
}

func TestDevAbortsOnFirstFailure(t *testing.T) {
	defer restoreHooks()

	events := make(chan struct{}, 2)
	events <- struct{}{}
	events <- struct{}{}
	close(events)
	watchDir = func(string) (chan struct{}, error) {
		return events, nil
	}

	var passes int
	mirrorPass = func(config.Target) error {
		passes++
		return errors.New("rsync: connection unexpectedly closed")
	}

	driver := Driver{Target: testTarget(config.Dev), Log: logrus.New()}
	err := driver.Run()
	require.Error(t, err)
	assert.Equal(t, 1, passes, "no further passes after a failure")
}

func TestDevMissingLocalDir(t *testing.T) {
	defer restoreHooks()

	watchDir = func(dir string) (chan struct{}, error) {
		return nil, errors.FileNotFound{Path: dir}
	}
	mirrorPass = func(config.Target) error {
		t.Fatal("no pass should run without a watcher")
		return nil
	}

	driver := Driver{Target: testTarget(config.Dev), Log: logrus.New()}
	err := driver.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"CelebV-HQ" doesn't exist`)
}
