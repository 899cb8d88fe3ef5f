package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	glyphs := false

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the glyphs and the calendar navigator keys",
		Example: `
edc key
edc key --glyphs
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{Glyphs: glyphs}
			err := k.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&glyphs, "glyphs", false, "Only print the glyph legend.")
	topLevel.AddCommand(cmd)
}
