package view

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/daybook/internal/models"
)

var today = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)

func TestHabitsEmpty(t *testing.T) {
	v := Habits(nil, today)
	if !v.Empty || len(v.Cards) != 0 {
		t.Errorf("Habits(nil) = %+v", v)
	}
}

func TestHabitCards(t *testing.T) {
	habits := []models.Habit{
		{
			ID: 1, Name: "Read", Icon: "📚", Description: "20 pages", Color: "#667eea",
			Completions: models.Completions{
				"2024-03-10": models.StatusCompleted,
				"2024-03-04": models.StatusFailed,
				"2024-01-01": models.StatusCompleted,
			},
		},
		{ID: 2, Name: "Run"},
	}

	v := Habits(habits, today)
	if v.Empty || len(v.Cards) != 2 {
		t.Fatalf("Habits() = %+v", v)
	}

	read := v.Cards[0]
	if read.Title != "📚 Read" || read.Description != "20 pages" || read.Color != "#667eea" {
		t.Errorf("card = %+v", read)
	}
	if v.Cards[1].Title != "Run" {
		t.Errorf("title without icon = %q", v.Cards[1].Title)
	}

	first, last := read.Days[0], read.Days[6]
	if first.Date != "2024-03-04" || first.Weekday != "Mon" || first.DayOfMonth != 4 || first.Marker != "✗" {
		t.Errorf("first cell = %+v", first)
	}
	if last.Date != "2024-03-10" || last.Weekday != "Sun" || last.Status != models.StatusCompleted || last.Marker != "✓" {
		t.Errorf("last cell = %+v", last)
	}
	if read.Days[3].Marker != "" || read.Days[3].Status != models.StatusUnrecorded {
		t.Errorf("unrecorded cell = %+v", read.Days[3])
	}

	// stats are all-time, not windowed
	if read.Stats.Total != 3 || read.Stats.Completed != 2 || read.Stats.Percentage != 67 {
		t.Errorf("stats = %+v", read.Stats)
	}
}

func TestJournalEmpty(t *testing.T) {
	v := Journal([]models.JournalEntry{})
	if !v.Empty || len(v.Cards) != 0 {
		t.Errorf("Journal(empty) = %+v", v)
	}
}

func TestJournalCards(t *testing.T) {
	entries := []models.JournalEntry{
		{ID: 2, Date: "2024-03-09", Title: "Sat", Mood: models.MoodGreat, Entry: "short"},
		{ID: 1, Date: "2024-01-02", Entry: strings.Repeat("a", 200)},
	}

	v := Journal(entries)
	if v.Empty || len(v.Cards) != 2 {
		t.Fatalf("Journal() = %+v", v)
	}
	if c := v.Cards[0]; c.Date != "March 9, 2024" || c.MoodGlyph != "😊" || c.Preview != "short" || c.Title != "Sat" {
		t.Errorf("card = %+v", c)
	}
	if c := v.Cards[1]; c.MoodGlyph != "" || len(c.Preview) != 153 || !strings.HasSuffix(c.Preview, "...") {
		t.Errorf("long card preview length %d", len(c.Preview))
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		runes int
	}{
		{"short", "hello", 5},
		{"exactly at limit", strings.Repeat("x", 150), 150},
		{"one over", strings.Repeat("x", 151), 153},
		{"multibyte", strings.Repeat("é", 200), 153},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preview(tt.body)
			if n := utf8.RuneCountInString(got); n != tt.runes {
				t.Errorf("Preview() has %d runes, want %d", n, tt.runes)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Preview() split a rune")
			}
		})
	}
}
