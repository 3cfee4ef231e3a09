package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daybook/internal/app"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/constants"
	habitrepo "github.com/julianstephens/daybook/internal/habits"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/tui/components/habits"
)

func setupModel(t *testing.T) (Model, *app.App) {
	t.Helper()
	cfg := config.Default()
	cfg.Store = storage.MemoryLocation
	cfg.Timezone = "UTC"

	clock := func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	a, err := app.Open(cfg, app.WithStore(storage.NewMemoryStore()), app.WithClock(clock))
	if err != nil {
		t.Fatalf("app.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	if _, err := a.Habits.Create(habitrepo.HabitInput{Name: "Read"}); err != nil {
		t.Fatal(err)
	}

	m := NewModel(a, cfg)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), a
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestSwitchTabMsg(t *testing.T) {
	m, _ := setupModel(t)

	if m.State() != constants.StateHabits {
		t.Fatalf("initial state = %v", m.State())
	}

	m, _ = step(t, m, SwitchTabMsg{Tab: constants.StateStats})
	if m.State() != constants.StateStats {
		t.Errorf("state after SwitchTabMsg = %v", m.State())
	}
	if m.statsModel.Draws() == 0 {
		t.Error("chart should be drawn when the stats tab becomes active")
	}
}

func TestTabKeyEmitsSwitchTabMsg(t *testing.T) {
	m, _ := setupModel(t)

	tests := []struct {
		key  tea.KeyMsg
		want constants.SessionState
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, constants.StateJournal},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, constants.StateStats},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")}, constants.StateStats},
	}
	for _, tt := range tests {
		_, cmd := step(t, m, tt.key)
		if cmd == nil {
			t.Fatalf("%s produced no command", tt.key)
		}
		msg, ok := cmd().(SwitchTabMsg)
		if !ok || msg.Tab != tt.want {
			t.Errorf("%s produced %#v, want tab %v", tt.key, msg, tt.want)
		}
	}
}

func TestToggleDayMsg(t *testing.T) {
	m, a := setupModel(t)
	h := a.Habits.All()[0]

	m, _ = step(t, m, habits.ToggleDayMsg{ID: h.ID, Date: "2024-03-10"})
	got, _ := a.Habits.Get(h.ID)
	if got.Completions.Get("2024-03-10") != models.StatusCompleted {
		t.Errorf("status after toggle = %v", got.Completions.Get("2024-03-10"))
	}
	if m.status == "" || m.statusErr {
		t.Errorf("expected a success status line, got %q", m.status)
	}

	card, ok := m.habitsModel.Selected()
	if !ok || card.Days[6].Status != models.StatusCompleted {
		t.Errorf("habit card not refreshed after toggle")
	}
}

func TestStatsRedrawWhileActive(t *testing.T) {
	m, a := setupModel(t)
	h := a.Habits.All()[0]

	m, _ = step(t, m, SwitchTabMsg{Tab: constants.StateStats})
	before := m.statsModel.Draws()
	m, _ = step(t, m, habits.ToggleDayMsg{ID: h.ID, Date: "2024-03-10"})
	if m.statsModel.Draws() <= before {
		t.Error("chart should be redrawn when data changes while stats is active")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, a := setupModel(t)
	h := a.Habits.All()[0]

	m, _ = step(t, m, habits.DeleteHabitMsg{ID: h.ID})
	if m.State() != constants.StateConfirmDelete {
		t.Fatalf("state = %v, want confirm", m.State())
	}
	if a.Habits.Len() != 1 {
		t.Fatal("habit deleted before confirmation")
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State() != constants.StateHabits {
		t.Errorf("state after cancel = %v", m.State())
	}
	if a.Habits.Len() != 1 {
		t.Error("declining must leave the habit in place")
	}

	m, _ = step(t, m, habits.DeleteHabitMsg{ID: h.ID})
	if err := m.pendingAction(); err != nil {
		t.Fatalf("pending delete failed: %v", err)
	}
	if a.Habits.Len() != 0 {
		t.Error("confirmed delete should remove the habit")
	}
}

func TestAddHabitOpensForm(t *testing.T) {
	m, _ := setupModel(t)

	m, cmd := step(t, m, habits.AddHabitMsg{})
	if m.State() != constants.StateHabitForm || m.form == nil {
		t.Fatalf("state = %v, form = %v", m.State(), m.form)
	}
	_ = cmd

	m.habitForm.Name = "Stretch"
	m.habitForm.Color = "#43e97b"
	m.saveHabit()
	m.closeForm()
	m.refresh()

	if m.State() != constants.StateHabits {
		t.Errorf("state after save = %v", m.State())
	}
	if m.app.Habits.Len() != 2 {
		t.Errorf("habit not created, have %d", m.app.Habits.Len())
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupModel(t)
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
