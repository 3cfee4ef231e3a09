package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daybook/internal/models"
)

var today = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fullWeek() models.Completions {
	c := models.Completions{}
	for i := 0; i < 7; i++ {
		c[today.AddDate(0, 0, -i).Format("2006-01-02")] = models.StatusCompleted
	}
	return c
}

func TestViewBeforeData(t *testing.T) {
	m := New(600, 300)
	m.SetSize(80, 30)
	if m.Draws() != 0 {
		t.Errorf("Draws() = %d before any data, want 0", m.Draws())
	}
	if !strings.Contains(m.View(), "7-day average") {
		t.Errorf("summary row missing:\n%s", m.View())
	}
}

func TestSetDataRedraws(t *testing.T) {
	m := New(600, 300)
	m.SetSize(80, 30)

	habits := []models.Habit{{ID: 1, Name: "Read", Completions: fullWeek()}}
	entries := []models.JournalEntry{
		{ID: 1, Date: "2024-03-10", Mood: models.MoodGood, Entry: "fine"},
	}
	m.SetData(habits, entries, today)

	if m.Draws() != 1 {
		t.Fatalf("Draws() = %d after SetData, want 1", m.Draws())
	}
	out := m.View()
	for _, want := range []string{"Habits", "Entries", "7-day average", "100%", "Best streak", "Read (7)"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if m.chart == "" {
		t.Error("chart was not rendered")
	}

	// new data replaces the previous numbers
	habits = append(habits, models.Habit{ID: 2, Name: "Run"})
	m.SetData(habits, nil, today)
	if m.Draws() != 2 {
		t.Errorf("Draws() = %d after second SetData, want 2", m.Draws())
	}
	if out := m.View(); !strings.Contains(out, "50%") {
		t.Errorf("half the habits done every day should average 50%%:\n%s", out)
	}

	m.SetSize(120, 40)
	if m.Draws() != 3 {
		t.Errorf("Draws() = %d after resize, want 3", m.Draws())
	}
}

func TestSetDataWithoutHabits(t *testing.T) {
	m := New(600, 300)
	m.SetData(nil, nil, today)
	if m.Draws() != 1 {
		t.Fatalf("Draws() = %d, want 1", m.Draws())
	}
	out := m.View()
	if !strings.Contains(out, "0%") {
		t.Errorf("empty data should average 0%%:\n%s", out)
	}
	if strings.Contains(out, "Best streak") {
		t.Errorf("no streak row expected without habits:\n%s", out)
	}
}
