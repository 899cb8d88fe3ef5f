package app

import (
	"context"
	"sort"
	"time"

	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/client"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/score"
	"github.com/edc-app/edc/pkg/timeutil"
)

// StreakLookback is how far back completions are read to measure streaks
// when the requested range is shorter.
const StreakLookback = 60

// Analytics summarises [from, to]. The server summary is used when the API
// offers one; otherwise the range is aggregated locally from tasks, habit
// completions and mood entries.
func (s *Service) Analytics(ctx context.Context, from, to time.Time) (model.Analytics, error) {
	from, to = timeutil.StartOfDay(from), timeutil.StartOfDay(to)
	if from.After(to) {
		from, to = to, from
	}
	if !s.Settings.Offline && s.API != nil {
		summary, err := cached(ctx, s, rangeKey(keyAnalytics+"/summary", from, to), func(ctx context.Context) (model.Analytics, error) {
			return s.API.AnalyticsSummary(ctx, from, to)
		})
		switch {
		case err == nil:
			summary.Source = "server"
			return summary, nil
		case !client.IsNotFound(err):
			return model.Analytics{}, err
		}
	}
	return s.localAnalytics(ctx, from, to)
}

func (s *Service) localAnalytics(ctx context.Context, from, to time.Time) (model.Analytics, error) {
	streakFrom := timeutil.AddDays(to, -StreakLookback+1)
	if from.Before(streakFrom) {
		streakFrom = from
	}
	all, err := s.AllTasks(ctx)
	if err != nil {
		return model.Analytics{}, err
	}
	habits, err := s.Habits(ctx)
	if err != nil {
		return model.Analytics{}, err
	}
	completions, err := s.Completions(ctx, streakFrom, to)
	if err != nil {
		return model.Analytics{}, err
	}
	moods, err := s.Moods(ctx, from, to)
	if err != nil {
		return model.Analytics{}, err
	}
	return Aggregate(from, to, s.now(), all, habits, completions, moods), nil
}

// Aggregate computes the local analytics for [from, to]. Completions before
// from only feed the streaks.
func Aggregate(from, to, now time.Time, all []model.Task, habits []model.Habit, completions []model.HabitCompletion, moods []model.MoodEntry) model.Analytics {
	out := model.Analytics{From: model.NewDate(from), To: model.NewDate(to), Source: "local"}

	active := make(map[int64]model.Habit)
	for _, h := range habits {
		if h.Active {
			active[h.ID] = h
		}
	}
	due := calendar.BucketByDate(all, model.Task.Due)
	done := calendar.BucketByDate(all, model.Task.CompletedOn)
	byDay := calendar.BucketByDate(completions, func(c model.HabitCompletion) (time.Time, bool) {
		return c.Date.Time, !c.Date.IsZero()
	})
	moodByDay := calendar.BucketByDate(moods, func(m model.MoodEntry) (time.Time, bool) {
		return m.EntryDate.Time, !m.EntryDate.IsZero()
	})

	var (
		dueTotal, dueDone   int
		habitDone, habitAll int
		moodSum             float64
		moodN               int
		best                = -1
	)
	for d := from; !d.After(to); d = timeutil.AddDays(d, 1) {
		key := timeutil.DateKey(d)
		day := calendar.Day{Date: d, Key: key, Tasks: due[key], Completions: byDay[key], Moods: moodByDay[key]}
		dayHabits := active
		if d.After(now) {
			dayHabits = nil
		}
		in := calendar.ScoreInputs(day, dayHabits)
		stat := model.DayStat{
			Date:           model.NewDate(d),
			TasksCompleted: len(done[key]),
			TasksDue:       in.TasksTotal,
			HabitsDone:     in.HabitsDone,
			HabitsTotal:    in.HabitsTotal,
		}
		if avg, ok := day.MoodAverage(); ok {
			stat.Mood = &avg
			for _, m := range day.Moods {
				moodSum += float64(m.MoodScore)
				moodN++
			}
		}
		res := score.Compute(in)
		stat.Score = res.Value
		dueTotal += in.TasksTotal
		dueDone += in.TasksDone
		habitDone += in.HabitsDone
		habitAll += in.HabitsTotal
		out.Days = append(out.Days, stat)
		if res.HasData && (best < 0 || stat.Score > out.Days[best].Score) {
			best = len(out.Days) - 1
		}
	}

	if dueTotal > 0 {
		out.CompletionRate = float64(dueDone) / float64(dueTotal)
	}
	if habitAll > 0 {
		out.HabitRate = float64(habitDone) / float64(habitAll)
	}
	if moodN > 0 {
		avg := moodSum / float64(moodN)
		out.AverageMood = &avg
	}
	if best >= 0 {
		d := out.Days[best].Date
		out.BestDay = &d
	}
	out.Streaks = Streaks(habits, completions, to)
	return out
}

// Streaks measures, for each active habit, the run of completed days ending
// at asOf (or the day before, when asOf is not done yet) and the longest run
// among the given completions.
func Streaks(habits []model.Habit, completions []model.HabitCompletion, asOf time.Time) []model.HabitStreak {
	doneDays := make(map[int64]map[string]bool)
	for _, h := range habits {
		if h.Active {
			doneDays[h.ID] = make(map[string]bool)
		}
	}
	byHabit := make(map[int64]model.Habit, len(habits))
	for _, h := range habits {
		byHabit[h.ID] = h
	}
	for _, c := range completions {
		days, ok := doneDays[c.HabitID]
		if !ok || c.Date.IsZero() || !byHabit[c.HabitID].IsComplete(c.Value) {
			continue
		}
		days[c.Date.Key()] = true
	}

	var out []model.HabitStreak
	for _, h := range habits {
		days, ok := doneDays[h.ID]
		if !ok {
			continue
		}
		st := model.HabitStreak{HabitID: h.ID, Name: h.Name}

		cursor := timeutil.StartOfDay(asOf)
		if !days[timeutil.DateKey(cursor)] {
			cursor = timeutil.AddDays(cursor, -1)
		}
		for days[timeutil.DateKey(cursor)] {
			st.Current++
			cursor = timeutil.AddDays(cursor, -1)
		}

		keys := make([]string, 0, len(days))
		for k := range days {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		run := 0
		var prev time.Time
		for _, k := range keys {
			d, err := time.ParseInLocation(timeutil.LayoutDate, k, time.Local)
			if err != nil {
				continue
			}
			if run > 0 && timeutil.DateKey(timeutil.AddDays(prev, 1)) == k {
				run++
			} else {
				run = 1
			}
			prev = d
			if run > st.Longest {
				st.Longest = run
			}
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Current != out[j].Current {
			return out[i].Current > out[j].Current
		}
		return out[i].Name < out[j].Name
	})
	return out
}
