package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/daybook/internal/chart"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/stats"
)

const (
	textChartCols = 70
	textChartRows = 15
)

type StatsCmd struct {
	SVG    string `help:"Also write the weekly chart as SVG to this file." type:"path" placeholder:"FILE"`
	Width  int    `help:"SVG width in pixels (defaults to config chart.width)."`
	Height int    `help:"SVG height in pixels (defaults to config chart.height)."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	a, err := ctx.Open(false)
	if err != nil {
		return err
	}

	today := a.Now()
	habits := a.Habits.All()
	week := stats.WeeklyAggregate(habits, today)
	summary := stats.Summarize(habits, a.Journal.All(), today)

	ctx.printf("%s %d   %s %d\n", bold.Sprint("Habits:"), summary.Habits, bold.Sprint("Entries:"), summary.Entries)
	ctx.printf("%s %s\n", bold.Sprint("7-day average:"), chart.PercentLabel(summary.WeekAverage))
	if summary.BestStreak > 0 {
		ctx.printf("%s %s, %d days\n", bold.Sprint("Best streak:"), summary.BestStreakName, summary.BestStreak)
	}
	if len(summary.Moods) > 0 {
		ctx.printf("%s", bold.Sprint("Moods this week:"))
		for _, m := range models.Moods {
			if n := summary.Moods[m]; n > 0 {
				ctx.printf(" %s %d", m.Glyph(), n)
			}
		}
		ctx.println()
	}
	ctx.println()

	layout := chart.Layout(week, c.chartWidth(ctx), c.chartHeight(ctx))
	tc := chart.NewTextCanvas(textChartCols, textChartRows)
	chart.Draw(tc, layout)
	ctx.println(tc.Render())

	if c.SVG == "" {
		return nil
	}
	svg := chart.NewSVGCanvas()
	chart.Draw(svg, layout)
	f, err := os.Create(c.SVG)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.SVG, err)
	}
	defer f.Close()
	if _, err := svg.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	logger.Debug("Wrote chart", "path", c.SVG)
	ctx.printf("%s Chart written to %s\n", okColor.Sprint("✓"), c.SVG)
	return nil
}

func (c *StatsCmd) chartWidth(ctx *Context) int {
	if c.Width > 0 {
		return c.Width
	}
	return ctx.Config.Chart.Width
}

func (c *StatsCmd) chartHeight(ctx *Context) int {
	if c.Height > 0 {
		return c.Height
	}
	return ctx.Config.Chart.Height
}
