package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	configCmd "github.com/parthalab/krakensync/cmd/config"
	"github.com/parthalab/krakensync/cmd/util"
	"github.com/parthalab/krakensync/cmd/version"
	"github.com/parthalab/krakensync/pkg/config"
	"github.com/parthalab/krakensync/pkg/errors"
	"github.com/parthalab/krakensync/pkg/sync"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "KRAKENSYNC_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	rootCmd := &cobra.Command{
		Use:   "krakensync [mode]",
		Short: "Push the local tree to the kraken web host",
		Long: `Push the local tree to the kraken web host with the external mirror tool.

With the mode argument "production", push once to the production directory
and exit. With any other mode, or none, push to the dev directory and keep
re-pushing whenever the local tree changes, until interrupted.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,

		// The call to rootCmd.Execute prints the error, so we silence errors
		// here to avoid double printing.
		SilenceErrors: true,
		Run: func(_ *cobra.Command, args []string) {
			var modeArg string
			if len(args) > 0 {
				modeArg = args[0]
			}
			if err := run(modeArg); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	rootCmd.AddCommand(
		configCmd.New(),
		version.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		util.HandleFatalError(err)
	}
}

func run(modeArg string) error {
	target, err := config.NewTarget(config.ResolveMode(modeArg))
	if err != nil {
		return errors.WithContext(err, "load config")
	}

	driver := sync.Driver{Target: target, Log: log.StandardLogger()}
	return driver.Run()
}
