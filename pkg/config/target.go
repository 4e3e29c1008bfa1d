package config

import (
	"fmt"
	"path"

	"github.com/parthalab/krakensync/pkg/errors"
)

// The compiled-in defaults reproduce the lab's deployment: the CelebV-HQ
// tree is pushed to the `web` account on kraken.
const (
	DefaultLocalDir      = "CelebV-HQ"
	DefaultRemoteUser    = "web"
	DefaultRemoteHost    = "kraken"
	DefaultProductionDir = "/home/web/partha"
	DefaultMirrorCommand = "rsync"
)

// DevSubdir is the subdirectory of the production directory that dev-mode
// pushes land in.
const DevSubdir = "dev"

// Excludes is the exclude set applied to every sync pass, regardless of
// mode: dotfiles and dot-directories, user uploads, and Python bytecode.
var Excludes = []string{".*", "uploads", "*.pyc", "__pycache__/"}

// RunMode selects between a one-shot production push and the continuous
// dev-mode watch loop.
type RunMode int

const (
	// Dev watches the local tree and re-syncs on every change.
	Dev RunMode = iota

	// Production performs a single sync pass and exits.
	Production
)

func (m RunMode) String() string {
	if m == Production {
		return "production"
	}
	return "dev"
}

// ResolveMode maps the optional mode argument to a RunMode. Only the exact
// string "production" selects Production; anything else, including an
// absent argument, falls back to Dev.
func ResolveMode(arg string) RunMode {
	if arg == "production" {
		return Production
	}
	return Dev
}

// Target describes where a sync pass reads from and writes to. It's
// constructed once at startup and never modified afterwards.
type Target struct {
	// LocalDir is the name of the directory to push, relative to the
	// working directory.
	LocalDir string

	RemoteUser string
	RemoteHost string

	// ProductionDir is the remote base directory for production pushes.
	// Dev pushes go to its DevSubdir.
	ProductionDir string

	// MirrorCommand is the external mirror tool binary.
	MirrorCommand string

	Mode RunMode
}

// NewTarget builds the sync target for `mode` from the compiled-in
// defaults, applying any overrides from the user config file. A missing
// user config is not an error.
func NewTarget(mode RunMode) (Target, error) {
	target := Target{
		LocalDir:      DefaultLocalDir,
		RemoteUser:    DefaultRemoteUser,
		RemoteHost:    DefaultRemoteHost,
		ProductionDir: DefaultProductionDir,
		MirrorCommand: DefaultMirrorCommand,
		Mode:          mode,
	}

	user, err := ParseUser()
	if err != nil {
		if _, ok := errors.RootCause(err).(errors.FileNotFound); ok {
			return target, nil
		}
		return Target{}, errors.WithContext(err, "parse user config")
	}

	if user.LocalDir != "" {
		target.LocalDir = user.LocalDir
	}
	if user.RemoteUser != "" {
		target.RemoteUser = user.RemoteUser
	}
	if user.RemoteHost != "" {
		target.RemoteHost = user.RemoteHost
	}
	if user.ProductionDir != "" {
		target.ProductionDir = user.ProductionDir
	}
	if user.MirrorCommand != "" {
		target.MirrorCommand = user.MirrorCommand
	}
	return target, nil
}

// BaseDir returns the remote base directory for the target's mode.
func (t Target) BaseDir() string {
	if t.Mode == Production {
		return t.ProductionDir
	}
	return path.Join(t.ProductionDir, DevSubdir)
}

// DestinationPath returns the full remote path that LocalDir is mirrored
// into.
func (t Target) DestinationPath() string {
	return path.Join(t.BaseDir(), t.LocalDir)
}

// RemoteDest returns the destination in the mirror tool's
// user@host:path syntax.
func (t Target) RemoteDest() string {
	return fmt.Sprintf("%s@%s:%s", t.RemoteUser, t.RemoteHost, t.DestinationPath())
}
