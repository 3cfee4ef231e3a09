package stats

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/daybook/internal/models"
)

var today = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.Local) // a Sunday

func habit(completions map[string]models.Status) models.Habit {
	return models.Habit{ID: 1, Name: "h", Completions: models.Completions(completions)}
}

func TestForHabit(t *testing.T) {
	tests := []struct {
		name        string
		completions map[string]models.Status
		want        HabitStats
	}{
		{name: "no records", want: HabitStats{}},
		{
			name: "three of four",
			completions: map[string]models.Status{
				"2024-03-01": models.StatusCompleted,
				"2024-03-02": models.StatusCompleted,
				"2024-03-03": models.StatusCompleted,
				"2024-03-04": models.StatusFailed,
			},
			want: HabitStats{Percentage: 75, Completed: 3, Total: 4},
		},
		{
			name: "half rounds up",
			completions: map[string]models.Status{
				"2024-03-01": models.StatusCompleted,
				"2024-03-02": models.StatusFailed,
				"2024-03-03": models.StatusFailed,
				"2024-03-04": models.StatusFailed,
				"2024-03-05": models.StatusFailed,
				"2024-03-06": models.StatusFailed,
				"2024-03-07": models.StatusFailed,
				"2024-03-08": models.StatusFailed,
			},
			want: HabitStats{Percentage: 13, Completed: 1, Total: 8},
		},
		{
			name: "two thirds",
			completions: map[string]models.Status{
				"2024-03-01": models.StatusCompleted,
				"2024-03-02": models.StatusCompleted,
				"2024-03-03": models.StatusFailed,
			},
			want: HabitStats{Percentage: 67, Completed: 2, Total: 3},
		},
		{
			name: "counts all time",
			completions: map[string]models.Status{
				"2019-01-01": models.StatusCompleted,
				"2024-03-10": models.StatusCompleted,
			},
			want: HabitStats{Percentage: 100, Completed: 2, Total: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForHabit(habit(tt.completions)); got != tt.want {
				t.Errorf("ForHabit() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWeeklyAggregate(t *testing.T) {
	habits := []models.Habit{
		habit(map[string]models.Status{"2024-03-10": models.StatusCompleted, "2024-03-04": models.StatusCompleted}),
		habit(map[string]models.Status{"2024-03-04": models.StatusFailed}),
	}

	week := WeeklyAggregate(habits, today)
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}

	wantDates := []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10"}
	wantLabels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i, d := range week {
		if d.Date != wantDates[i] || d.Label != wantLabels[i] {
			t.Errorf("day %d = %s/%s, want %s/%s", i, d.Date, d.Label, wantDates[i], wantLabels[i])
		}
	}

	if week[0].Value != 50 {
		t.Errorf("first day = %v, want 50", week[0].Value)
	}
	if week[6].Value != 50 {
		t.Errorf("today = %v, want 50", week[6].Value)
	}
	if week[3].Value != 0 {
		t.Errorf("unrecorded day = %v, want 0", week[3].Value)
	}
}

func TestWeeklyAggregateNoHabits(t *testing.T) {
	for i, v := range WeeklyAggregate(nil, today).Values() {
		if v != 0 {
			t.Errorf("day %d = %v, want 0", i, v)
		}
	}
}

func TestWeeklyAggregateUsesCurrentHabitCount(t *testing.T) {
	// the second habit was created today but still dilutes last Monday
	habits := []models.Habit{
		habit(map[string]models.Status{"2024-03-04": models.StatusCompleted}),
		{ID: 2, Name: "new"},
		{ID: 3, Name: "newer"},
	}
	got := WeeklyAggregate(habits, today)[0].Value
	if math.Abs(got-100.0/3) > 1e-9 {
		t.Errorf("aggregate = %v, want 33.33", got)
	}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name        string
		completions map[string]models.Status
		want        int
	}{
		{name: "empty", want: 0},
		{
			name: "through today",
			completions: map[string]models.Status{
				"2024-03-08": models.StatusCompleted,
				"2024-03-09": models.StatusCompleted,
				"2024-03-10": models.StatusCompleted,
			},
			want: 3,
		},
		{
			name: "today unrecorded",
			completions: map[string]models.Status{
				"2024-03-08": models.StatusCompleted,
				"2024-03-09": models.StatusCompleted,
			},
			want: 2,
		},
		{
			name: "today failed",
			completions: map[string]models.Status{
				"2024-03-09": models.StatusCompleted,
				"2024-03-10": models.StatusFailed,
			},
			want: 0,
		},
		{
			name: "gap",
			completions: map[string]models.Status{
				"2024-03-07": models.StatusCompleted,
				"2024-03-09": models.StatusCompleted,
				"2024-03-10": models.StatusCompleted,
			},
			want: 2,
		},
		{
			name: "across month boundary",
			completions: map[string]models.Status{
				"2024-02-28": models.StatusCompleted,
				"2024-02-29": models.StatusCompleted,
				"2024-03-01": models.StatusCompleted,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(habit(tt.completions), today); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}

	leap := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.Local)
	h := habit(map[string]models.Status{
		"2024-02-28": models.StatusCompleted,
		"2024-02-29": models.StatusCompleted,
		"2024-03-01": models.StatusCompleted,
	})
	if got := Streak(h, leap); got != 3 {
		t.Errorf("Streak() across leap day = %d, want 3", got)
	}
}

func TestSummarize(t *testing.T) {
	habits := []models.Habit{
		{ID: 1, Name: "Read", Completions: models.Completions{"2024-03-09": models.StatusCompleted, "2024-03-10": models.StatusCompleted}},
		{ID: 2, Name: "Run", Completions: models.Completions{"2024-03-10": models.StatusCompleted}},
	}
	entries := []models.JournalEntry{
		{ID: 1, Date: "2024-03-10", Mood: models.MoodGreat, Entry: "x"},
		{ID: 2, Date: "2024-03-09", Mood: models.MoodGreat, Entry: "x"},
		{ID: 3, Date: "2024-03-08", Mood: models.MoodBad, Entry: "x"},
		{ID: 4, Date: "2024-03-08", Entry: "no mood"},
		{ID: 5, Date: "2024-02-01", Mood: models.MoodOkay, Entry: "outside the week"},
	}

	s := Summarize(habits, entries, today)

	if s.Habits != 2 || s.Entries != 5 {
		t.Errorf("counts = %d habits, %d entries", s.Habits, s.Entries)
	}
	if s.BestStreak != 2 || s.BestStreakName != "Read" {
		t.Errorf("best streak = %d (%s), want 2 (Read)", s.BestStreak, s.BestStreakName)
	}
	if s.Moods[models.MoodGreat] != 2 || s.Moods[models.MoodBad] != 1 || s.Moods[models.MoodOkay] != 0 {
		t.Errorf("mood counts = %v", s.Moods)
	}
	// 50% on Saturday, 100% on Sunday
	if want := 150.0 / 7; math.Abs(s.WeekAverage-want) > 1e-9 {
		t.Errorf("week average = %v, want %v", s.WeekAverage, want)
	}
}
