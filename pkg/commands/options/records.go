package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/model"
)

// EventOptions
type EventOptions struct {
	Description string
	Start       string
	End         string
	AllDay      bool
	Location    string
	Repeat      string
	Task        int64
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "D", "",
		"Longer description of the event.")
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Start, example: --start="2024-06-18 14:00" or --start=2024-06-18 for all day.`)
	cmd.Flags().StringVar(&o.End, "end", "",
		"End, defaults to one hour after start.")
	cmd.Flags().BoolVar(&o.AllDay, "all-day", false,
		"The event lasts all day.")
	cmd.Flags().StringVar(&o.Location, "location", "",
		"Where the event happens.")
	cmd.Flags().StringVar(&o.Repeat, "repeat", "",
		`Recurrence rule, example: --repeat="FREQ=WEEKLY;BYDAY=TU".`)
	cmd.Flags().Int64Var(&o.Task, "task", 0,
		"Link the event to a task id.")
}

// Input builds an event from the title words and flags.
func (o *EventOptions) Input(args []string, now time.Time) (model.EventInput, error) {
	in := model.EventInput{
		Title:          strings.Join(args, " "),
		Description:    o.Description,
		AllDay:         o.AllDay,
		Location:       o.Location,
		RecurrenceRule: o.Repeat,
	}
	if o.Task > 0 {
		id := o.Task
		in.TaskID = &id
	}

	start, dayOnly, err := parseMoment(o.Start, now)
	if err != nil {
		return in, err
	}
	if dayOnly {
		in.AllDay = true
	}
	in.Start = model.DateTime{Time: start}

	switch {
	case o.End != "":
		end, _, err := parseMoment(o.End, now)
		if err != nil {
			return in, err
		}
		in.End = model.DateTime{Time: end}
	case !in.AllDay && !start.IsZero():
		in.End = model.DateTime{Time: start.Add(time.Hour)}
	}
	return in, nil
}

// parseMoment reads a timestamp, falling back to a whole day.
func parseMoment(raw string, now time.Time) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, nil
	}
	if t, err := model.ParseDateTime(raw); err == nil && strings.ContainsAny(raw, "T :") {
		return t, false, nil
	}
	if t, err := model.ParseDateTime(raw + ":00"); err == nil {
		return t, false, nil
	}
	t, err := ParseDay(raw, now)
	return t, true, err
}

// HabitOptions
type HabitOptions struct {
	Description string
	Type        string
	Target      float64
	Unit        string
	Paused      bool
}

func AddHabitArgs(cmd *cobra.Command, o *HabitOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "D", "",
		"Longer description of the habit.")
	cmd.Flags().StringVar(&o.Type, "type", "boolean",
		"Completion type, one of boolean, count or duration.")
	cmd.Flags().Float64Var(&o.Target, "target", 0,
		"Daily target for count and duration habits.")
	cmd.Flags().StringVar(&o.Unit, "unit", "",
		"Unit of the target, example: glasses or minutes.")
	cmd.Flags().BoolVar(&o.Paused, "paused", false,
		"Create the habit inactive.")
}

func (o *HabitOptions) Input(args []string) (model.HabitInput, error) {
	ct, err := model.ParseCompletionType(o.Type)
	if err != nil {
		return model.HabitInput{}, err
	}
	return model.HabitInput{
		Name:           strings.Join(args, " "),
		Description:    o.Description,
		Active:         !o.Paused,
		CompletionType: ct,
		TargetValue:    o.Target,
		Unit:           o.Unit,
	}, nil
}

// MoodOptions
type MoodOptions struct {
	OnOptions
	Energy int
	Tags   []string
	Notes  string
}

func AddMoodArgs(cmd *cobra.Command, o *MoodOptions) {
	AddOnArgs(cmd, &o.OnOptions)
	cmd.Flags().IntVar(&o.Energy, "energy", 0,
		"Energy level from 1 to 5.")
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil,
		"Context tags, example: --tag=work,sleep.")
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "",
		"Free text notes.")
}

// Input builds a mood entry for score on the --on day.
func (o *MoodOptions) Input(score int, now time.Time) (model.MoodInput, error) {
	on, err := o.GetOn(now)
	if err != nil {
		return model.MoodInput{}, err
	}
	in := model.MoodInput{
		EntryDate:   model.NewDate(on),
		MoodScore:   score,
		ContextTags: o.Tags,
		Notes:       o.Notes,
	}
	if o.Energy != 0 {
		e := o.Energy
		in.EnergyLevel = &e
	}
	return in, nil
}

// TimerOptions
type TimerOptions struct {
	Task int64
}

func AddTimerArgs(cmd *cobra.Command, o *TimerOptions) {
	cmd.Flags().Int64Var(&o.Task, "task", 0,
		"Track time against a task id.")
}

func (o *TimerOptions) Input(args []string) model.TimerInput {
	in := model.TimerInput{Description: strings.Join(args, " ")}
	if o.Task > 0 {
		id := o.Task
		in.TaskID = &id
	}
	return in
}
