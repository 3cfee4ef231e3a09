package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/daybook/internal/habits"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/stats"
	"github.com/julianstephens/daybook/internal/view"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	Toggle HabitToggleCmd `cmd:"" help:"Cycle a day's status: unrecorded, completed, failed."`
	List   HabitListCmd   `cmd:"" help:"List habits with the last seven days." default:"1"`
	Show   HabitShowCmd   `cmd:"" help:"Show one habit in detail."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `short:"d" help:"Optional description."`
	Icon        string `short:"i" help:"Optional icon shown before the name."`
	Color       string `short:"c" help:"Hex color (defaults to the configured default color)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	a, err := ctx.Open(true)
	if err != nil {
		return err
	}

	h, err := a.Habits.Create(habits.HabitInput{
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
	})
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}

	ctx.printf("%s Added habit %s (id %d)\n", okColor.Sprint("✓"), bold.Sprint(view.Title(h)), h.ID)
	return nil
}

type HabitEditCmd struct {
	ID          string  `arg:"" help:"Habit id."`
	Name        *string `help:"New name."`
	Description *string `short:"d" help:"New description."`
	Icon        *string `short:"i" help:"New icon."`
	Color       *string `short:"c" help:"New hex color."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	a, err := ctx.Open(true)
	if err != nil {
		return err
	}

	h, ok := a.Habits.Get(id)
	if !ok {
		return fmt.Errorf("habit not found: %d", id)
	}

	in := habits.HabitInput{Name: h.Name, Description: h.Description, Icon: h.Icon, Color: h.Color}
	if c.Name != nil {
		in.Name = *c.Name
	}
	if c.Description != nil {
		in.Description = *c.Description
	}
	if c.Icon != nil {
		in.Icon = *c.Icon
	}
	if c.Color != nil {
		in.Color = *c.Color
	}

	if _, err := a.Habits.Update(id, in); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	ctx.printf("%s Updated habit %d\n", okColor.Sprint("✓"), id)
	return nil
}

type HabitDeleteCmd struct {
	ID  string `arg:"" help:"Habit id."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	a, err := ctx.Open(true)
	if err != nil {
		return err
	}

	h, ok := a.Habits.Get(id)
	if !ok {
		return fmt.Errorf("habit not found: %d", id)
	}

	confirmed, err := confirm(c.Yes, fmt.Sprintf("Delete habit %q and all of its history?", h.Name))
	if err != nil {
		return err
	}
	if !confirmed {
		ctx.println("Delete cancelled.")
		return nil
	}

	if _, err := a.Habits.Delete(id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	ctx.printf("%s Deleted habit %s\n", okColor.Sprint("✓"), h.Name)
	return nil
}

type HabitToggleCmd struct {
	ID     string `arg:"" help:"Habit id."`
	Date   string `help:"Day to change (YYYY-MM-DD, today, yesterday)." default:"today"`
	Status string `help:"Set this status instead of cycling (completed, failed, unrecorded)."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	a, err := ctx.Open(true)
	if err != nil {
		return err
	}
	date, err := resolveDate(a, c.Date)
	if err != nil {
		return err
	}

	var (
		status models.Status
		found  bool
	)
	if c.Status == "" {
		status, found, err = a.Habits.ToggleCompletion(id, date)
	} else {
		target, ok := models.ParseStatus(c.Status)
		if !ok && c.Status != models.StatusUnrecorded.String() {
			return fmt.Errorf("invalid status %q (expected completed, failed or unrecorded)", c.Status)
		}
		status, found, err = a.Habits.SetStatus(id, date, target)
	}
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	if !found {
		return fmt.Errorf("habit not found: %d", id)
	}

	h, _ := a.Habits.Get(id)
	ctx.printf("%s %s on %s is now %s\n",
		statusColor(status).Sprint(markerOrDot(status)),
		view.Title(h), date, statusColor(status).Sprint(status))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	a, err := ctx.Open(false)
	if err != nil {
		return err
	}

	hv := view.Habits(a.Habits.All(), a.Now())
	if hv.Empty {
		ctx.println("No habits yet. Add one with 'daybook habit add <name>'.")
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []any{bold.Sprint("ID"), bold.Sprint("HABIT")}
	for _, d := range hv.Cards[0].Days {
		header = append(header, bold.Sprint(d.Weekday[:2]))
	}
	header = append(header, bold.Sprint("DONE"), bold.Sprint("STREAK"))
	tbl.AddRow(header...)

	for _, card := range hv.Cards {
		row := []any{card.ID, card.Title}
		for _, d := range card.Days {
			row = append(row, statusColor(d.Status).Sprint(markerOrDot(d.Status)))
		}
		row = append(row,
			fmt.Sprintf("%d%% (%d/%d)", card.Stats.Percentage, card.Stats.Completed, card.Stats.Total),
			streakFor(a.Habits, card.ID, a.Now()),
		)
		tbl.AddRow(row...)
	}
	tbl.RightAlign(0)

	ctx.println(tbl)
	return nil
}

type HabitShowCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	a, err := ctx.Open(false)
	if err != nil {
		return err
	}

	h, ok := a.Habits.Get(id)
	if !ok {
		return fmt.Errorf("habit not found: %d", id)
	}
	card := view.Habits([]models.Habit{h}, a.Now()).Cards[0]

	ctx.println(bold.Sprint(card.Title))
	if card.Description != "" {
		ctx.println(card.Description)
	}
	ctx.println()

	var days, marks []string
	for _, d := range card.Days {
		days = append(days, fmt.Sprintf("%-3s", d.Weekday))
		marks = append(marks, statusColor(d.Status).Sprintf("%-3s", markerOrDot(d.Status)))
	}
	ctx.println(strings.Join(days, " "))
	ctx.println(strings.Join(marks, " "))
	ctx.println()

	tbl := uitable.New()
	tbl.AddRow("ID:", h.ID)
	tbl.AddRow("Color:", h.Color)
	tbl.AddRow("Completed:", fmt.Sprintf("%d of %d recorded days (%d%%)", card.Stats.Completed, card.Stats.Total, card.Stats.Percentage))
	tbl.AddRow("Streak:", fmt.Sprintf("%d days", stats.Streak(h, a.Now())))
	ctx.println(tbl)
	return nil
}

func streakFor(repo *habits.Repository, id int64, today time.Time) int {
	h, ok := repo.Get(id)
	if !ok {
		return 0
	}
	return stats.Streak(h, today)
}

// markerOrDot keeps unrecorded cells visible in a table.
func markerOrDot(s models.Status) string {
	if m := view.Marker(s); m != "" {
		return m
	}
	return "·"
}
