// Package score computes the daily productivity score: a 0-100 blend of task
// completion, habit completion and mood.
package score

import "math"

// Weights of each component. They sum to 100.
const (
	TaskWeight  = 40.0
	HabitWeight = 40.0
	MoodWeight  = 20.0
)

// Level buckets a score for colour coding.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelFair
	LevelGood
	LevelExcellent
)

// Thresholds are inclusive lower bounds.
const (
	ExcellentThreshold = 80
	GoodThreshold      = 60
	FairThreshold      = 40
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelFair:
		return "fair"
	case LevelGood:
		return "good"
	case LevelExcellent:
		return "excellent"
	}
	return "none"
}

// Inputs for one day. Mood is the day's average mood on the 1-5 scale, zero
// when nothing was logged.
type Inputs struct {
	TasksDone   int
	TasksTotal  int
	HabitsDone  int
	HabitsTotal int
	Mood        float64
}

// Result of Compute.
type Result struct {
	Value   int     `json:"value"`
	Level   Level   `json:"-"`
	HasData bool    `json:"has_data"`
	Tasks   float64 `json:"tasks_ratio"`
	Habits  float64 `json:"habits_ratio"`
	Mood    float64 `json:"mood_ratio"`
}

// Compute blends the components present in in. A component without data
// (no tasks due, no active habits, no mood logged) gives its weight to the
// others so an empty category never drags the day down.
func Compute(in Inputs) Result {
	var (
		res    Result
		total  float64
		weight float64
	)
	if in.TasksTotal > 0 {
		res.Tasks = ratio(in.TasksDone, in.TasksTotal)
		total += res.Tasks * TaskWeight
		weight += TaskWeight
	}
	if in.HabitsTotal > 0 {
		res.Habits = ratio(in.HabitsDone, in.HabitsTotal)
		total += res.Habits * HabitWeight
		weight += HabitWeight
	}
	if in.Mood >= 1 {
		m := math.Min(in.Mood, 5)
		res.Mood = (m - 1) / 4
		total += res.Mood * MoodWeight
		weight += MoodWeight
	}
	if weight == 0 {
		return res
	}
	res.HasData = true
	res.Value = int(math.Round(total / weight * 100))
	res.Level = LevelFor(res.Value)
	return res
}

// LevelFor maps a 0-100 value to its Level.
func LevelFor(v int) Level {
	switch {
	case v >= ExcellentThreshold:
		return LevelExcellent
	case v >= GoodThreshold:
		return LevelGood
	case v >= FairThreshold:
		return LevelFair
	}
	return LevelLow
}

func ratio(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	if done > total {
		done = total
	}
	if done < 0 {
		done = 0
	}
	return float64(done) / float64(total)
}
