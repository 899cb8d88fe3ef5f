package commands

import (
	"github.com/spf13/cobra"

	teaui "github.com/edc-app/edc/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the calendar navigator",
		Example: `
edc ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := loadService()
			if err != nil {
				return err
			}
			ctx, cancel := interruptible()
			defer cancel()
			return teaui.Run(ctx, svc)
		},
	}

	topLevel.AddCommand(cmd)
}
