package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/commands/options"
	"github.com/edc-app/edc/pkg/runner/search"
)

func addSearch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "search",
		Aliases: []string{"searches"},
		Short:   "Save and run named task filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addSearchList(cmd)
	addSearchSave(cmd)
	addSearchShow(cmd)
	addSearchRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addSearchList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved searches",
		Example: `
edc search list
edc search ls -o yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			l := search.List{Service: svc, Printer: pp}
			err = l.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addSearchSave(parent *cobra.Command) {
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the filter flags under a name",
		Example: `
edc search save urgent --priority high --completed no
edc search save overdue --overdue --sort due
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			f, err := fo.Filter(svc.Clock())
			if err != nil {
				return output.HandleError(err)
			}
			s := search.Save{Service: svc, Printer: pp, Name: strings.Join(args, " "), Filter: f}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addSearchShow(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "show <name|id>",
		Aliases: []string{"run"},
		Short:   "Run a saved search",
		Example: `
edc search show urgent
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a saved search")
			}
			return nil
		},
		ValidArgsFunction: searchCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			s := search.Show{Service: svc, Printer: pp, Ref: strings.Join(args, " ")}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, output)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addSearchRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <name|id>",
		Aliases: []string{"delete"},
		Short:   "Delete a saved search",
		Example: `
edc search rm urgent
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a saved search")
			}
			return nil
		},
		ValidArgsFunction: searchCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			r := search.Remove{Service: svc, Printer: pp, Ref: strings.Join(args, " ")}
			err = r.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
