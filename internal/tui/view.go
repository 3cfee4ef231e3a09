package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateJournal:
		content = docStyle.Render(m.journalModel.View())
	case constants.StateStats:
		content = m.statsModel.View()
	case constants.StateHabitForm, constants.StateJournalForm, constants.StateConfirmDelete:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var rendered []string
	for _, t := range tabs {
		if m.tab == t {
			rendered = append(rendered, activeTabStyle.Render(tabTitles[t]))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tabTitles[t]))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.validationWarning != "" {
		bar = lipgloss.JoinHorizontal(lipgloss.Top, bar, warningStyle.Render(m.validationWarning))
	}
	return bar
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render("✗ " + m.status)
	}
	return statusStyle.Render(m.status)
}
