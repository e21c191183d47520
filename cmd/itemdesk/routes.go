package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/itemdesk/app/web"
	"github.com/dmitrymomot/itemdesk/core/guard"
	"github.com/dmitrymomot/itemdesk/core/router"
)

func newRoutesCmd(load func(context.Context) (*web.App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the HTTP routes and their navigation policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			routes := app.Routes()
			slices.SortFunc(routes, func(a, b router.Route) int {
				if c := strings.Compare(a.Pattern, b.Pattern); c != 0 {
					return c
				}
				return strings.Compare(a.Method, b.Method)
			})

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tPATTERN\tPOLICY")
			for _, r := range routes {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Method, r.Pattern, guard.PolicyFor(r.Pattern))
			}
			return tw.Flush()
		},
	}
}
