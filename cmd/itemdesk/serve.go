package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/itemdesk/app/web"
	"github.com/dmitrymomot/itemdesk/core/logger"
)

func newServeCmd(load func(context.Context) (*web.App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web client until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := load(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					app.Logger().Error("failed to close app", logger.Error(err))
				}
			}()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(app.Run(ctx))
			return g.Wait()
		},
	}
}
