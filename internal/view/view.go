// Package view projects repository state into display cards shared by the
// TUI and the CLI.
package view

import (
	"time"
	"unicode/utf8"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/stats"
	"github.com/julianstephens/daybook/internal/utils"
)

// DayCell is one toggleable day in a habit's trailing week.
type DayCell struct {
	Date       string
	Weekday    string
	DayOfMonth int
	Status     models.Status
	Marker     string
}

type HabitCard struct {
	ID          int64
	Title       string
	Description string
	Color       string
	Days        [constants.TrailingDays]DayCell
	Stats       stats.HabitStats
}

// HabitsView is either a list of cards or the empty state, never both.
type HabitsView struct {
	Cards []HabitCard
	Empty bool
}

type JournalCard struct {
	ID        int64
	Date      string
	Title     string
	MoodGlyph string
	Preview   string
}

type JournalView struct {
	Cards []JournalCard
	Empty bool
}

// Marker returns the cell glyph for a status.
func Marker(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return "✓"
	case models.StatusFailed:
		return "✗"
	default:
		return ""
	}
}

// Title joins the icon and name with a space, or returns the name alone.
func Title(h models.Habit) string {
	if h.Icon == "" {
		return h.Name
	}
	return h.Icon + " " + h.Name
}

func Habits(habits []models.Habit, today time.Time) HabitsView {
	if len(habits) == 0 {
		return HabitsView{Cards: []HabitCard{}, Empty: true}
	}

	days := utils.LastWeek(today)
	cards := make([]HabitCard, 0, len(habits))
	for _, h := range habits {
		card := HabitCard{
			ID:          h.ID,
			Title:       Title(h),
			Description: h.Description,
			Color:       h.Color,
			Stats:       stats.ForHabit(h),
		}
		for i, d := range days {
			date := utils.FormatDate(d)
			status := h.Completions.Get(date)
			card.Days[i] = DayCell{
				Date:       date,
				Weekday:    utils.DayLabel(d),
				DayOfMonth: d.Day(),
				Status:     status,
				Marker:     Marker(status),
			}
		}
		cards = append(cards, card)
	}
	return HabitsView{Cards: cards}
}

// Preview truncates body to the preview limit in runes and marks the cut.
func Preview(body string) string {
	if utf8.RuneCountInString(body) <= constants.PreviewLimit {
		return body
	}
	return string([]rune(body)[:constants.PreviewLimit]) + constants.PreviewSuffix
}

func Journal(entries []models.JournalEntry) JournalView {
	if len(entries) == 0 {
		return JournalView{Cards: []JournalCard{}, Empty: true}
	}

	cards := make([]JournalCard, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, JournalCard{
			ID:        e.ID,
			Date:      utils.FormatLongDate(e.Date),
			Title:     e.Title,
			MoodGlyph: e.Mood.Glyph(),
			Preview:   Preview(e.Entry),
		})
	}
	return JournalView{Cards: cards}
}
