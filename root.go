package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	ConfigPath string
	APIURL     string
	Offline    bool
	LogFile    string
	LogLevel   string
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	cmd := &cobra.Command{
		Use:           "stockhub",
		Short:         "Assign warehouse employees to branches",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForm(cmd.Context(), &opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/stockhub/config.toml)")
	flags.StringVar(&opts.APIURL, "api", "", "backend base URL, overrides api.base_url")
	flags.BoolVar(&opts.Offline, "offline", false, "use built-in data instead of the backend")
	flags.StringVar(&opts.LogFile, "log-file", "", "log file, overrides log.file")
	flags.StringVar(&opts.LogLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newPickCmd(&opts))
	cmd.AddCommand(newOptionsCmd(&opts))
	cmd.AddCommand(newConfigCmd(&opts))
	return cmd
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		cancel()
		os.Exit(1)
	}
}
