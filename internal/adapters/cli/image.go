package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/imagecache/queries"
)

// NewImageCommand creates the image command with subcommands
func NewImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Resolve wiki images",
	}

	cmd.AddCommand(newImageResolveCommand())

	return cmd
}

func newImageResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file>",
		Short: "Resolve a wiki file name to its image URL",
		Long: `Look the file up in the image cache, asking the wiki on a miss.
Successful wiki lookups are cached; unknown files are not.

Example:
  sttc image resolve Spock_Head.png`,
		Args: cobra.ExactArgs(1),
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

			resp, err := a.mediator.Send(ctx, &queries.ResolveImageQuery{FileName: args[0]})
			if err != nil {
				return err
			}
			result := resp.(*queries.ResolveImageResponse)

			if !result.Found {
				return fmt.Errorf("no image found for %s", result.FileName)
			}
			fmt.Println(result.URL)
			return nil
		},
	}
}
