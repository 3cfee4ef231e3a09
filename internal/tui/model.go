package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/app"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/tui/components/habits"
	"github.com/julianstephens/daybook/internal/tui/components/journal"
	"github.com/julianstephens/daybook/internal/tui/components/stats"
	"github.com/julianstephens/daybook/internal/validation"
	"github.com/julianstephens/daybook/internal/view"
)

// tabs in display order
var tabs = []constants.SessionState{constants.StateHabits, constants.StateJournal, constants.StateStats}

var tabTitles = map[constants.SessionState]string{
	constants.StateHabits:  "Habits",
	constants.StateJournal: "Journal",
	constants.StateStats:   "Stats",
}

// SwitchTabMsg makes Tab the active tab.
type SwitchTabMsg struct {
	Tab constants.SessionState
}

func switchTab(tab constants.SessionState) tea.Cmd {
	return func() tea.Msg { return SwitchTabMsg{Tab: tab} }
}

type Model struct {
	app     *app.App
	palette []string

	state constants.SessionState
	tab   constants.SessionState
	keys  KeyMap
	help  help.Model

	habitsModel  habits.Model
	journalModel journal.Model
	statsModel   stats.Model

	form          *huh.Form
	habitForm     *HabitFormModel
	journalForm   *JournalFormModel
	confirmForm   *ConfirmFormModel
	editingID     int64
	pendingAction func() error

	status            string
	statusErr         bool
	validationWarning string

	quitting bool
	width    int
	height   int
}

func NewModel(a *app.App, cfg config.Config) Model {
	m := Model{
		app:          a,
		palette:      cfg.Palette,
		state:        constants.StateHabits,
		tab:          constants.StateHabits,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		habitsModel:  habits.New(0, 0),
		journalModel: journal.New(0, 0),
		statsModel:   stats.New(cfg.Chart.Width, cfg.Chart.Height),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the current session state.
func (m Model) State() constants.SessionState {
	return m.state
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.habitsModel.HelpKeys()...)
	case constants.StateJournal:
		keys = append(keys, m.journalModel.HelpKeys()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	groups := m.keys.FullHelp()
	switch m.state {
	case constants.StateHabits:
		groups = append(groups, m.habitsModel.HelpKeys())
	case constants.StateJournal:
		groups = append(groups, m.journalModel.HelpKeys())
	}
	return groups
}

// refresh rebuilds every projection from the repositories. The chart is
// only redrawn when the stats tab is showing.
func (m *Model) refresh() {
	now := m.app.Now()
	m.habitsModel.SetView(view.Habits(m.app.Habits.All(), now))
	m.journalModel.SetView(view.Journal(m.app.Journal.All()))
	if m.tab == constants.StateStats {
		m.statsModel.SetData(m.app.Habits.All(), m.app.Journal.All(), now)
	}
	m.updateValidationStatus()
}

func (m *Model) updateValidationStatus() {
	v := validation.New()
	conflicts := len(v.ValidateHabits(m.app.Habits.All()).Conflicts) +
		len(v.ValidateEntries(m.app.Journal.All()).Conflicts)
	if conflicts > 0 {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'daybook doctor'", conflicts)
	} else {
		m.validationWarning = ""
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}
