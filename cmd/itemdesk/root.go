package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/itemdesk/app/web"
	"github.com/dmitrymomot/itemdesk/core/config"
)

// Version is set at build time with -ldflags "-X main.Version=x.y.z".
var Version = "dev"

// opener builds the app for a command.
type opener func(ctx context.Context, cfg web.Config) (*web.App, error)

func defaultOpener(ctx context.Context, cfg web.Config) (*web.App, error) {
	return web.New(ctx, web.WithConfig(cfg))
}

type globalFlags struct {
	addr     string
	logLevel string
	backend  string
}

func newRootCmd(open opener) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "itemdesk",
		Short: "Local web client for the item service",
		Long: `itemdesk serves a small web UI on this machine. It keeps the signed-in
user's session on disk (or in redis) and talks to the remote auth and
item services on the user's behalf.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.addr, "addr", "", "listen address (overrides SERVER_ADDR)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides LOG_LEVEL)")
	root.PersistentFlags().StringVar(&flags.backend, "session-backend", "", "session backend: memory, file or redis (overrides SESSION_BACKEND)")

	// load resolves the configuration and opens the app with flag overrides applied.
	load := func(ctx context.Context) (*web.App, error) {
		var cfg web.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		if flags.addr != "" {
			cfg.Server.Addr = flags.addr
		}
		if flags.logLevel != "" {
			cfg.LogLevel = flags.logLevel
		}
		if flags.backend != "" {
			cfg.Session.Backend = flags.backend
		}
		return open(ctx, cfg)
	}

	root.AddCommand(
		newServeCmd(load),
		newSessionCmd(load),
		newRoutesCmd(load),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itemdesk %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
