package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addRefresh(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Drop cached api responses",
		Example: `
edc refresh
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			n, err := svc.Refresh(context.Background())
			if err != nil {
				return output.HandleError(err)
			}
			_, _ = fmt.Fprintf(color.Output, "Dropped %d cached responses\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&output.JSON, "json", false, "Output errors as JSON.")
	topLevel.AddCommand(cmd)
}
