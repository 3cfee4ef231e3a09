package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/constants"
	habitrepo "github.com/julianstephens/daybook/internal/habits"
	journalrepo "github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/tui/components/habits"
	"github.com/julianstephens/daybook/internal/tui/components/journal"
	"github.com/julianstephens/daybook/internal/utils"
)

// chrome is the number of rows taken by the tab bar, status line and help.
const chrome = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		w, h := size.Width-4, max(size.Height-chrome-2, 1)
		m.habitsModel.SetSize(w, h)
		m.journalModel.SetSize(w, h)
		m.statsModel.SetSize(size.Width, size.Height-chrome)
		if m.form != nil {
			m.form = m.form.WithWidth(min(size.Width-4, 72))
		}
		return m, nil
	}

	switch m.state {
	case constants.StateHabitForm, constants.StateJournalForm, constants.StateConfirmDelete:
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case SwitchTabMsg:
		m.tab = msg.Tab
		m.state = msg.Tab
		if msg.Tab == constants.StateStats {
			m.statsModel.SetData(m.app.Habits.All(), m.app.Journal.All(), m.app.Now())
		}
		return m, nil

	case habits.ToggleDayMsg:
		status, found, err := m.app.Habits.ToggleCompletion(msg.ID, msg.Date)
		if err != nil {
			m.setError(err)
		} else if found {
			m.setStatus(fmt.Sprintf("%s: %s", utils.FormatLongDate(msg.Date), status))
		}
		m.refresh()
		return m, nil

	case habits.AddHabitMsg:
		m.editingID = 0
		m.habitForm = &HabitFormModel{}
		return m.openForm(constants.StateHabitForm, NewHabitForm(m.habitForm, m.palette))

	case habits.EditHabitMsg:
		h, ok := m.app.Habits.Get(msg.ID)
		if !ok {
			return m, nil
		}
		m.editingID = h.ID
		m.habitForm = &HabitFormModel{Name: h.Name, Description: h.Description, Icon: h.Icon, Color: h.Color}
		return m.openForm(constants.StateHabitForm, NewHabitForm(m.habitForm, m.palette))

	case habits.DeleteHabitMsg:
		h, ok := m.app.Habits.Get(msg.ID)
		if !ok {
			return m, nil
		}
		id := h.ID
		return m.confirmDelete(fmt.Sprintf("Delete habit %q and all of its history?", h.Name), func() error {
			_, err := m.app.Habits.Delete(id)
			return err
		})

	case journal.AddEntryMsg:
		m.editingID = 0
		m.journalForm = &JournalFormModel{Date: m.app.Today()}
		return m.openForm(constants.StateJournalForm, NewJournalForm(m.journalForm))

	case journal.EditEntryMsg:
		e, ok := m.app.Journal.Get(msg.ID)
		if !ok {
			return m, nil
		}
		m.editingID = e.ID
		m.journalForm = &JournalFormModel{Date: e.Date, Title: e.Title, Mood: e.Mood, Entry: e.Entry}
		return m.openForm(constants.StateJournalForm, NewJournalForm(m.journalForm))

	case journal.DeleteEntryMsg:
		e, ok := m.app.Journal.Get(msg.ID)
		if !ok {
			return m, nil
		}
		id := e.ID
		return m.confirmDelete(fmt.Sprintf("Delete the entry from %s?", utils.FormatLongDate(e.Date)), func() error {
			_, err := m.app.Journal.Delete(id)
			return err
		})

	case tea.KeyMsg:
		filtering := m.state == constants.StateJournal && m.journalModel.Filtering()
		if !filtering {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Tab):
				return m, switchTab(m.neighbourTab(1))
			case key.Matches(msg, m.keys.ShiftTab):
				return m, switchTab(m.neighbourTab(-1))
			case key.Matches(msg, m.keys.Habits):
				return m, switchTab(constants.StateHabits)
			case key.Matches(msg, m.keys.Journal):
				return m, switchTab(constants.StateJournal)
			case key.Matches(msg, m.keys.Stats):
				return m, switchTab(constants.StateStats)
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case constants.StateJournal:
		m.journalModel, cmd = m.journalModel.Update(msg)
	}
	return m, cmd
}

func (m Model) neighbourTab(step int) constants.SessionState {
	for i, t := range tabs {
		if t == m.tab {
			return tabs[(i+step+len(tabs))%len(tabs)]
		}
	}
	return constants.StateHabits
}

func (m Model) openForm(state constants.SessionState, form *huh.Form) (tea.Model, tea.Cmd) {
	if m.width > 0 {
		form = form.WithWidth(min(m.width-4, 72))
	}
	m.form = form
	m.state = state
	m.status = ""
	return m, m.form.Init()
}

func (m Model) confirmDelete(title string, action func() error) (tea.Model, tea.Cmd) {
	m.confirmForm = &ConfirmFormModel{}
	m.pendingAction = action
	return m.openForm(constants.StateConfirmDelete, NewConfirmForm(m.confirmForm, title))
}

// closeForm returns to the tab the form was opened from.
func (m *Model) closeForm() {
	m.form = nil
	m.pendingAction = nil
	m.state = m.tab
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		switch m.state {
		case constants.StateHabitForm:
			m.saveHabit()
		case constants.StateJournalForm:
			m.saveEntry()
		case constants.StateConfirmDelete:
			if m.confirmForm.Confirmed && m.pendingAction != nil {
				if err := m.pendingAction(); err != nil {
					m.setError(err)
				} else {
					m.setStatus("Deleted.")
				}
			}
		}
		m.closeForm()
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) saveHabit() {
	fm := m.habitForm
	in := habitrepo.HabitInput{Name: fm.Name, Description: fm.Description, Icon: fm.Icon, Color: fm.Color}

	var err error
	if m.editingID == 0 {
		_, err = m.app.Habits.Create(in)
	} else {
		_, err = m.app.Habits.Update(m.editingID, in)
	}
	if err != nil {
		logger.Warn("Failed to save habit", "error", err)
		m.setError(err)
		return
	}
	m.setStatus("Saved habit " + fm.Name)
}

func (m *Model) saveEntry() {
	fm := m.journalForm
	in := journalrepo.EntryInput{Date: fm.Date, Title: fm.Title, Mood: fm.Mood, Entry: fm.Entry}

	var err error
	if m.editingID == 0 {
		_, err = m.app.Journal.Create(in)
	} else {
		_, err = m.app.Journal.Update(m.editingID, in)
	}
	if err != nil {
		logger.Warn("Failed to save journal entry", "error", err)
		m.setError(err)
		return
	}
	m.setStatus("Saved entry for " + utils.FormatLongDate(fm.Date))
}
