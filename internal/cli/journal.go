package cli

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
	"github.com/julianstephens/daybook/internal/view"
)

const bodyWrapWidth = 80

type JournalCmd struct {
	Add    JournalAddCmd    `cmd:"" help:"Write a journal entry."`
	Edit   JournalEditCmd   `cmd:"" help:"Edit a journal entry."`
	Delete JournalDeleteCmd `cmd:"" help:"Delete a journal entry."`
	List   JournalListCmd   `cmd:"" help:"List journal entries, newest first." default:"1"`
	Show   JournalShowCmd   `cmd:"" help:"Show a full journal entry."`
}

type JournalAddCmd struct {
	Entry string `arg:"" help:"Entry text."`
	Date  string `help:"Entry date (YYYY-MM-DD, today, yesterday)." default:"today"`
	Title string `short:"t" help:"Optional title."`
	Mood  string `short:"m" help:"Mood: great, good, okay or bad."`
}

func (c *JournalAddCmd) Run(ctx *Context) error {
	a, err := ctx.Open(true)
	if err != nil {
		return err
	}
	date, err := resolveDate(a, c.Date)
	if err != nil {
		return err
	}

	e, err := a.Journal.Create(journal.EntryInput{
		Date:  date,
		Title: c.Title,
		Mood:  models.Mood(strings.ToLower(c.Mood)),
		Entry: c.Entry,
	})
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	ctx.printf("%s Saved entry for %s (id %d)\n", okColor.Sprint("✓"), utils.FormatLongDate(e.Date), e.ID)
	return nil
}

type JournalEditCmd struct {
	ID    string  `arg:"" help:"Entry id."`
	Entry *string `help:"New entry text."`
	Date  *string `help:"New date (YYYY-MM-DD)."`
	Title *string `short:"t" help:"New title."`
	Mood  *string `short:"m" help:"New mood: great, good, okay, bad or empty to clear."`
}

func (c *JournalEditCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	a, err := ctx.Open(true)
	if err != nil {
		return err
	}

	e, ok := a.Journal.Get(id)
	if !ok {
		return fmt.Errorf("journal entry not found: %d", id)
	}

	in := journal.EntryInput{Date: e.Date, Title: e.Title, Mood: e.Mood, Entry: e.Entry}
	if c.Entry != nil {
		in.Entry = *c.Entry
	}
	if c.Date != nil {
		if in.Date, err = resolveDate(a, *c.Date); err != nil {
			return err
		}
	}
	if c.Title != nil {
		in.Title = *c.Title
	}
	if c.Mood != nil {
		in.Mood = models.Mood(strings.ToLower(*c.Mood))
	}

	if _, err := a.Journal.Update(id, in); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	ctx.printf("%s Updated entry %d\n", okColor.Sprint("✓"), id)
	return nil
}

type JournalDeleteCmd struct {
	ID  string `arg:"" help:"Entry id."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *JournalDeleteCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	a, err := ctx.Open(true)
	if err != nil {
		return err
	}

	e, ok := a.Journal.Get(id)
	if !ok {
		return fmt.Errorf("journal entry not found: %d", id)
	}

	confirmed, err := confirm(c.Yes, fmt.Sprintf("Delete the entry from %s?", utils.FormatLongDate(e.Date)))
	if err != nil {
		return err
	}
	if !confirmed {
		ctx.println("Delete cancelled.")
		return nil
	}

	if _, err := a.Journal.Delete(id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ctx.printf("%s Deleted entry %d\n", okColor.Sprint("✓"), id)
	return nil
}

type JournalListCmd struct {
	Limit int `short:"n" help:"Show at most this many entries (0 for all)." default:"0"`
}

func (c *JournalListCmd) Run(ctx *Context) error {
	a, err := ctx.Open(false)
	if err != nil {
		return err
	}

	jv := view.Journal(a.Journal.All())
	if jv.Empty {
		ctx.println("No journal entries yet. Write one with 'daybook journal add <text>'.")
		return nil
	}

	cards := jv.Cards
	if c.Limit > 0 && len(cards) > c.Limit {
		cards = cards[:c.Limit]
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("DATE"), bold.Sprint("MOOD"), bold.Sprint("TITLE"), bold.Sprint("PREVIEW"))
	for _, card := range cards {
		tbl.AddRow(card.ID, card.Date, card.MoodGlyph, card.Title, card.Preview)
	}
	tbl.RightAlign(0)

	ctx.println(tbl)
	return nil
}

type JournalShowCmd struct {
	ID string `arg:"" help:"Entry id."`
}

func (c *JournalShowCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	a, err := ctx.Open(false)
	if err != nil {
		return err
	}

	e, ok := a.Journal.Get(id)
	if !ok {
		return fmt.Errorf("journal entry not found: %d", id)
	}

	header := utils.FormatLongDate(e.Date)
	if glyph := e.Mood.Glyph(); glyph != "" {
		header += " " + glyph
	}
	ctx.println(bold.Sprint(header))
	if e.Title != "" {
		ctx.println(e.Title)
	}
	ctx.println()
	ctx.println(wordwrap.String(e.Entry, bodyWrapWidth))
	ctx.println()
	ctx.println(faint.Sprintf("written %s", e.CreatedAt.Local().Format("2006-01-02 15:04")))
	return nil
}
