package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the page data cache",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached entry (settings are untouched)",
			RunE: func(cmd *cobra.Command, args []string) error {
				n := app.Cache.ClearAll(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cache entries\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "evict",
			Short: "Remove only entries past their TTL",
			RunE: func(cmd *cobra.Command, args []string) error {
				n := app.Cache.EvictExpired(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "Evicted %d expired entries\n", n)
				return nil
			},
		},
	)

	return cmd
}
