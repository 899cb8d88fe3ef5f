package model

// DayStat aggregates one day of activity.
type DayStat struct {
	Date           Date     `json:"date"`
	TasksCompleted int      `json:"tasks_completed"`
	TasksDue       int      `json:"tasks_due"`
	HabitsDone     int      `json:"habits_done"`
	HabitsTotal    int      `json:"habits_total"`
	Mood           *float64 `json:"mood,omitempty"`
	Score          int      `json:"score"`
}

// HabitStreak is the run of consecutive completed days for a habit.
type HabitStreak struct {
	HabitID int64  `json:"habit_id"`
	Name    string `json:"name"`
	Current int    `json:"current"`
	Longest int    `json:"longest"`
}

// Analytics summarises a date range. Source is "server" when the API
// computed it and "local" when it was aggregated on this machine.
type Analytics struct {
	From           Date          `json:"start_date"`
	To             Date          `json:"end_date"`
	Days           []DayStat     `json:"days"`
	CompletionRate float64       `json:"completion_rate"`
	HabitRate      float64       `json:"habit_rate"`
	AverageMood    *float64      `json:"average_mood,omitempty"`
	BestDay        *Date         `json:"best_day,omitempty"`
	Streaks        []HabitStreak `json:"streaks,omitempty"`
	Source         string        `json:"source,omitempty"`
}

// TimerInput starts a time entry.
type TimerInput struct {
	TaskID      *int64 `json:"task_id,omitempty"`
	Description string `json:"description,omitempty"`
}
