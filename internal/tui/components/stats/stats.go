package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/chart"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/stats"
)

const (
	minCols = 35
	maxCols = 100
	minRows = 8
	maxRows = 20
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true)
)

// Model shows the summary numbers and the weekly completion chart.
type Model struct {
	chartWidth  int
	chartHeight int
	width       int
	height      int

	summary stats.Summary
	week    stats.Weekly
	chart   string
	draws   int
}

// New takes the chart's logical pixel size; the text canvas is scaled to
// whatever space the terminal offers.
func New(chartWidth, chartHeight int) Model {
	return Model{chartWidth: chartWidth, chartHeight: chartHeight}
}

func (m *Model) SetData(habits []models.Habit, entries []models.JournalEntry, today time.Time) {
	m.week = stats.WeeklyAggregate(habits, today)
	m.summary = stats.Summarize(habits, entries, today)
	m.Render()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.Render()
}

// Draws counts chart redraws.
func (m Model) Draws() int {
	return m.draws
}

// Render redraws the chart from the current weekly values.
func (m *Model) Render() {
	if m.week == nil {
		return
	}
	cols := clamp(m.width-4, minCols, maxCols)
	rows := clamp(m.height-8, minRows, maxRows)

	layout := chart.Layout(m.week, m.chartWidth, m.chartHeight)
	canvas := chart.NewTextCanvas(cols, rows)
	chart.Draw(canvas, layout)
	m.chart = canvas.Render()
	m.draws++
}

func (m Model) View() string {
	s := m.summary
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + " " + valueStyle.Render(value) + "   ")
	}
	row("Habits", fmt.Sprint(s.Habits))
	row("Entries", fmt.Sprint(s.Entries))
	row("7-day average", chart.PercentLabel(s.WeekAverage))
	if s.BestStreak > 0 {
		row("Best streak", fmt.Sprintf("%s (%d)", s.BestStreakName, s.BestStreak))
	}
	b.WriteString("\n")

	if len(s.Moods) > 0 {
		b.WriteString(labelStyle.Render("Moods this week"))
		for _, mood := range models.Moods {
			if n := s.Moods[mood]; n > 0 {
				fmt.Fprintf(&b, " %s %d", mood.Glyph(), n)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.chart)
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
