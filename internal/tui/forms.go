package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/validation"
)

type HabitFormModel struct {
	Name        string
	Description string
	Icon        string
	Color       string
}

type JournalFormModel struct {
	Date  string
	Title string
	Mood  models.Mood
	Entry string
}

type ConfirmFormModel struct {
	Confirmed bool
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " cannot be empty")
		}
		return nil
	}
}

// NewHabitForm builds the add/edit habit form. The current color is offered
// even when it is not part of the palette.
func NewHabitForm(fm *HabitFormModel, palette []string) *huh.Form {
	colors := append([]string(nil), palette...)
	if fm.Color != "" && !contains(colors, fm.Color) {
		colors = append([]string{fm.Color}, colors...)
	}
	if fm.Color == "" && len(colors) > 0 {
		fm.Color = colors[0]
	}

	options := make([]huh.Option[string], len(colors))
	for i, c := range colors {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("██")
		options[i] = huh.NewOption(swatch+" "+c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(required("habit name")),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Icon").
				Description("Optional emoji shown before the name").
				CharLimit(8).
				Value(&fm.Icon),
			huh.NewSelect[string]().
				Title("Color").
				Options(options...).
				Value(&fm.Color),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewJournalForm(fm *JournalFormModel) *huh.Form {
	moods := []huh.Option[models.Mood]{huh.NewOption("No mood", models.MoodNone)}
	for _, m := range models.Moods {
		moods = append(moods, huh.NewOption(m.Glyph()+" "+string(m), m))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&fm.Date).
				Validate(validation.ValidateDate),
			huh.NewInput().
				Title("Title").
				Value(&fm.Title),
			huh.NewSelect[models.Mood]().
				Title("Mood").
				Options(moods...).
				Value(&fm.Mood),
			huh.NewText().
				Title("Entry").
				Value(&fm.Entry).
				Validate(required("entry")),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewConfirmForm(fm *ConfirmFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
