package util

import (
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/parthalab/krakensync/pkg/errors"
)

// HandleFatalError prints a user-friendly version of `err` and exits.
// Failures of an external command propagate the command's exit status.
func HandleFatalError(err error) {
	log.WithError(err).Debug("Fatal error")
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))
	os.Exit(ExitCode(err))
}

// ExitCode returns the process exit status for `err`. If the root cause is
// a nonzero exit from a child process, the child's status is propagated;
// everything else exits 1.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}

// HandlePanic recovers from panics in the calling goroutine so that they
// don't crash the process without a diagnostic.
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	log.WithField("panic", r).Error("Unexpected panic")
	fmt.Fprintf(os.Stderr, "Aborting due to an unexpected error: %v\n\n%s", r, debug.Stack())
	os.Exit(1)
}
