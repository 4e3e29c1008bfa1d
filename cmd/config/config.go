package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/parthalab/krakensync/cmd/util"
	"github.com/parthalab/krakensync/pkg/config"
	"github.com/parthalab/krakensync/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout          io.Writer = os.Stdout
	parseUserConfig           = config.ParseUser
	writeUserConfig           = config.WriteUser
)

// New creates a new `config` command.
func New() *cobra.Command {
	var cliOpts config.User
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Setup the krakensync user configuration",
		Run: func(_ *cobra.Command, _ []string) {
			if err := SetupConfig(cliOpts); err != nil {
				err = errors.NewFriendlyError("Failed to setup configuration:\n%s", err)
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&cliOpts.LocalDir, "local-dir", "",
		"Set the local directory to push. "+
			"Optional: If not set, the compiled-in default is kept.")
	cmd.Flags().StringVar(&cliOpts.RemoteUser, "remote-user", "",
		"Set the user on the remote host. "+
			"Optional: If not set, the compiled-in default is kept.")
	cmd.Flags().StringVar(&cliOpts.RemoteHost, "remote-host", "",
		"Set the remote host to push to. "+
			"Optional: If not set, the compiled-in default is kept.")
	cmd.Flags().StringVar(&cliOpts.ProductionDir, "production-dir", "",
		"Set the remote production base directory. "+
			"Optional: If not set, the compiled-in default is kept.")
	cmd.Flags().StringVar(&cliOpts.MirrorCommand, "mirror-command", "",
		"Set the mirror tool binary. "+
			"Optional: If not set, the compiled-in default is kept.")

	// Setup the commands for querying the contents of the user config.
	type getterSpec struct {
		use, short string
		fn         func(config.User) string
	}

	getters := []getterSpec{
		{
			use:   "get-remote-host",
			short: "Get the currently configured remote host",
			fn:    func(cfg config.User) string { return cfg.RemoteHost },
		},
		{
			use:   "get-production-dir",
			short: "Get the currently configured production base directory",
			fn:    func(cfg config.User) string { return cfg.ProductionDir },
		},
	}
	for _, getter := range getters {
		getter := getter
		cmd.AddCommand(&cobra.Command{
			Use:   getter.use,
			Short: getter.short,
			Run: func(_ *cobra.Command, _ []string) {
				cfg, err := parseUserConfig()
				if err != nil {
					err = errors.WithContext(err, "read config")
					util.HandleFatalError(err)
				}

				fmt.Fprintln(stdout, getter.fn(cfg))
			},
		})
	}

	return cmd
}

// SetupConfig merges the flag overrides into the existing user config and
// writes the result back to disk.
func SetupConfig(cliOpts config.User) error {
	cfg, err := parseUserConfig()
	if err != nil {
		if _, ok := errors.RootCause(err).(errors.FileNotFound); !ok {
			return errors.WithContext(err, "read config")
		}
		cfg = config.User{}
	}

	if cliOpts.LocalDir != "" {
		cfg.LocalDir = cliOpts.LocalDir
	}
	if cliOpts.RemoteUser != "" {
		cfg.RemoteUser = cliOpts.RemoteUser
	}
	if cliOpts.RemoteHost != "" {
		cfg.RemoteHost = cliOpts.RemoteHost
	}
	if cliOpts.ProductionDir != "" {
		cfg.ProductionDir = cliOpts.ProductionDir
	}
	if cliOpts.MirrorCommand != "" {
		cfg.MirrorCommand = cliOpts.MirrorCommand
	}

	if err := writeUserConfig(cfg); err != nil {
		return errors.WithContext(err, "write config")
	}

	path, err := config.GetUserConfigPath()
	if err != nil {
		return errors.WithContext(err, "get user config path")
	}

	fmt.Fprintf(stdout, "Wrote config to %s\n", path)
	return nil
}
