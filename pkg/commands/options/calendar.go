package options

import (
	"github.com/spf13/cobra"
)

// CalendarOptions
type CalendarOptions struct {
	OnOptions
	Weeks      int
	AgendaDays int
}

func AddCalendarArgs(cmd *cobra.Command, o *CalendarOptions) {
	AddOnArgs(cmd, &o.OnOptions)
	cmd.Flags().IntVar(&o.Weeks, "weeks", 1,
		"Number of weeks shown by the week view.")
	cmd.Flags().IntVar(&o.AgendaDays, "agenda-days", 14,
		"Number of days shown by the agenda.")
}

// ServiceOptions
type ServiceOptions struct {
	Offline bool
}

func AddServiceArgs(cmd *cobra.Command, o *ServiceOptions) {
	cmd.PersistentFlags().BoolVar(&o.Offline, "offline", false,
		"Serve cached data only and refuse changes.")
}
