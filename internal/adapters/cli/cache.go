package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/imagecache/queries"
)

// NewCacheCommand creates the cache command with subcommands
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the image cache",
	}

	cmd.AddCommand(newCacheStatsCommand())

	return cmd
}

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show image cache size and counters",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := a.close(ctx); err == nil && closeErr != nil {
					err = closeErr
				}
			}()

			resp, err := a.mediator.Send(ctx, &queries.CacheStatsQuery{})
			if err != nil {
				return err
			}
			stats := resp.(*queries.CacheStatsResponse)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Driver:\t%s\n", a.cfg.Cache.Driver)
			fmt.Fprintf(w, "Entries:\t%d\n", stats.Entries)
			fmt.Fprintf(w, "Hits:\t%d\n", stats.Hits)
			fmt.Fprintf(w, "Misses:\t%d\n", stats.Misses)
			fmt.Fprintf(w, "Fetches:\t%d\n", stats.Fetches)
			fmt.Fprintf(w, "Fetch failures:\t%d\n", stats.FetchFailures)
			fmt.Fprintf(w, "Store errors:\t%d\n", stats.StoreErrors)
			return w.Flush()
		},
	}
}
