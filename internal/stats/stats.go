package stats

import (
	"time"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

// HabitStats summarizes a habit over every recorded date.
type HabitStats struct {
	Percentage int
	Completed  int
	Total      int
}

// ForHabit counts recorded dates of both statuses. Percentage is
// completed/total*100 rounded half up, or 0 when nothing is recorded.
func ForHabit(h models.Habit) HabitStats {
	var s HabitStats
	for _, status := range h.Completions {
		switch status {
		case models.StatusCompleted:
			s.Completed++
			s.Total++
		case models.StatusFailed:
			s.Total++
		}
	}
	if s.Total > 0 {
		// integer form of floor(c/t*100 + 0.5)
		s.Percentage = (s.Completed*200 + s.Total) / (2 * s.Total)
	}
	return s
}

// Day is one bar of the weekly aggregate.
type Day struct {
	Date  string
	Label string
	Value float64
}

// Weekly is the trailing week ending today, oldest first.
type Weekly []Day

// Values returns the seven percentages in order.
func (w Weekly) Values() []float64 {
	out := make([]float64, len(w))
	for i, d := range w {
		out[i] = d.Value
	}
	return out
}

// WeeklyAggregate computes, for each of the trailing seven days, the share
// of the current habits marked completed on that date. Habits created
// partway through the week still count toward every day's denominator.
func WeeklyAggregate(habits []models.Habit, today time.Time) Weekly {
	days := utils.LastWeek(today)
	out := make(Weekly, 0, len(days))
	for _, d := range days {
		date := utils.FormatDate(d)
		day := Day{Date: date, Label: utils.DayLabel(d)}
		if len(habits) > 0 {
			completed := 0
			for _, h := range habits {
				if h.Completions.Get(date) == models.StatusCompleted {
					completed++
				}
			}
			day.Value = float64(completed) / float64(len(habits)) * 100
		}
		out = append(out, day)
	}
	return out
}

// Streak counts consecutive completed days ending today. An unrecorded today
// does not break the streak, so counting starts from yesterday in that case.
func Streak(h models.Habit, today time.Time) int {
	day := utils.StartOfDay(today)
	if h.Completions.Get(utils.FormatDate(day)) == models.StatusUnrecorded {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for h.Completions.Get(utils.FormatDate(day)) == models.StatusCompleted {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Summary holds the totals shown above the weekly chart.
type Summary struct {
	Habits         int
	Entries        int
	BestStreak     int
	BestStreakName string
	WeekAverage    float64
	Moods          map[models.Mood]int
}

func Summarize(habits []models.Habit, entries []models.JournalEntry, today time.Time) Summary {
	s := Summary{
		Habits:  len(habits),
		Entries: len(entries),
		Moods:   make(map[models.Mood]int),
	}

	for _, h := range habits {
		if n := Streak(h, today); n > s.BestStreak {
			s.BestStreak = n
			s.BestStreakName = h.Name
		}
	}

	week := WeeklyAggregate(habits, today)
	var sum float64
	for _, d := range week {
		sum += d.Value
	}
	s.WeekAverage = sum / float64(len(week))

	inWeek := make(map[string]bool, len(week))
	for _, d := range week {
		inWeek[d.Date] = true
	}
	for _, e := range entries {
		if inWeek[e.Date] && e.Mood != models.MoodNone && e.Mood.Valid() {
			s.Moods[e.Mood]++
		}
	}

	return s
}
