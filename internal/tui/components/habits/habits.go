package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/view"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	ID int64
}

type DeleteHabitMsg struct {
	ID int64
}

// ToggleDayMsg asks the parent to advance the status of one day cell.
type ToggleDayMsg struct {
	ID   int64
	Date string
}

const cellWidth = 5

var (
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dayStyle    = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("241"))
	cellStyle   = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	cursorStyle = cellStyle.Reverse(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev habit"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next habit"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle day"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// Model is a scrollable column of habit cards with a cursor on one day cell.
type Model struct {
	cards    []view.HabitCard
	keys     KeyMap
	row      int
	col      int
	viewport viewport.Model
}

func New(width, height int) Model {
	return Model{
		keys:     DefaultKeyMap(),
		col:      constants.TrailingDays - 1,
		viewport: viewport.New(width, height),
	}
}

func (m *Model) SetView(v view.HabitsView) {
	m.cards = v.Cards
	if m.row >= len(m.cards) {
		m.row = max(0, len(m.cards)-1)
	}
	m.render()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// Selected returns the card under the cursor.
func (m Model) Selected() (view.HabitCard, bool) {
	if len(m.cards) == 0 {
		return view.HabitCard{}, false
	}
	return m.cards[m.row], true
}

// Cursor returns the selected card index and day column.
func (m Model) Cursor() (int, int) {
	return m.row, m.col
}

func (m Model) HelpKeys() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Left, m.keys.Right, m.keys.Add, m.keys.Edit, m.keys.Delete}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Add):
		return m, func() tea.Msg { return AddHabitMsg{} }
	case key.Matches(km, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(km, m.keys.Down):
		if m.row < len(m.cards)-1 {
			m.row++
		}
	case key.Matches(km, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(km, m.keys.Right):
		if m.col < constants.TrailingDays-1 {
			m.col++
		}
	}

	card, ok := m.Selected()
	if ok {
		switch {
		case key.Matches(km, m.keys.Toggle):
			date := card.Days[m.col].Date
			return m, func() tea.Msg { return ToggleDayMsg{ID: card.ID, Date: date} }
		case key.Matches(km, m.keys.Edit):
			return m, func() tea.Msg { return EditHabitMsg{ID: card.ID} }
		case key.Matches(km, m.keys.Delete):
			return m, func() tea.Msg { return DeleteHabitMsg{ID: card.ID} }
		}
	}

	m.render()
	return m, nil
}

func (m Model) View() string {
	if len(m.cards) == 0 {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.viewport.View()
}

func (m *Model) render() {
	var b strings.Builder
	line, start, end := 0, 0, 0
	for i, card := range m.cards {
		rendered := m.renderCard(card, i == m.row)
		h := lipgloss.Height(rendered)
		if i == m.row {
			start, end = line, line+h
		}
		b.WriteString(rendered)
		b.WriteString("\n\n")
		line += h + 1
	}
	m.viewport.SetContent(b.String())

	if start < m.viewport.YOffset {
		m.viewport.SetYOffset(start)
	} else if end > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(end - m.viewport.Height)
	}
}

func (m Model) renderCard(card view.HabitCard, selected bool) string {
	accent := lipgloss.Color(card.Color)
	if card.Color == "" {
		accent = lipgloss.Color(constants.DefaultColor)
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(accent).
		Foreground(lipgloss.Color(TextColorFor(card.Color))).
		Render(card.Title)
	summary := statsStyle.Render(fmt.Sprintf("%d/%d · %d%%", card.Stats.Completed, card.Stats.Total, card.Stats.Percentage))
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", summary)}

	if card.Description != "" {
		lines = append(lines, descStyle.Render(card.Description))
	}

	var days, cells []string
	for i, d := range card.Days {
		days = append(days, dayStyle.Render(d.Weekday))
		marker := d.Marker
		if marker == "" {
			marker = "·"
		}
		if selected && i == m.col {
			cells = append(cells, cursorStyle.Render(marker))
			continue
		}
		switch d.Status {
		case models.StatusCompleted:
			marker = doneStyle.Render(marker)
		case models.StatusFailed:
			marker = failStyle.Render(marker)
		}
		cells = append(cells, cellStyle.Render(marker))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, days...))
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))

	border := lipgloss.NormalBorder()
	if selected {
		border = lipgloss.ThickBorder()
	}
	return lipgloss.NewStyle().
		Border(border, false, false, false, true).
		BorderForeground(accent).
		PaddingLeft(1).
		Render(strings.Join(lines, "\n"))
}

// TextColorFor picks black or white text for the given background color.
func TextColorFor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#ffffff"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
