package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/commands/options"
	"github.com/edc-app/edc/pkg/runner/timer"
)

func addTimer(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Track time",
		Example: `
edc timer
edc timer start deep work --task 4
edc timer watch
edc timer stop
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimerStatus(cmd)
		},
	}
	options.AddOutputArg(cmd, output)

	addTimerStatus(cmd)
	addTimerStart(cmd)
	addTimerStop(cmd)
	addTimerWatch(cmd)
	topLevel.AddCommand(cmd)
}

func runTimerStatus(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	svc, pp, err := setup()
	if err != nil {
		return output.HandleError(err)
	}
	s := timer.Status{Service: svc, Printer: pp}
	err = s.Do(context.Background())
	return output.HandleError(err)
}

func addTimerStatus(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimerStatus(cmd)
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTimerStart(parent *cobra.Command) {
	to := &options.TimerOptions{}

	cmd := &cobra.Command{
		Use:   "start [description]",
		Short: "Start a timer",
		Example: `
edc timer start
edc timer start writing --task 4
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			s := timer.Start{Service: svc, Printer: pp, Input: to.Input(args)}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTimerArgs(cmd, to)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTimerStop(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			s := timer.Stop{Service: svc, Printer: pp}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTimerWatch(parent *cobra.Command) {
	poll := timer.DefaultPoll

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the running timer live until interrupted",
		Example: `
edc timer watch
edc timer watch --poll 1m
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return err
			}
			ctx, cancel := interruptible()
			defer cancel()
			w := timer.Watch{Service: svc, Printer: pp, Poll: poll}
			return w.Do(ctx)
		},
	}

	cmd.Flags().DurationVar(&poll, "poll", poll,
		"How often to ask the api for the running timer.")
	parent.AddCommand(cmd)
}
