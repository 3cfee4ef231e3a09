package habits

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/view"
)

func sampleView() view.HabitsView {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	return view.Habits([]models.Habit{
		{ID: 1, Name: "Read", Color: "#667eea", Completions: models.Completions{"2024-03-10": models.StatusCompleted}},
		{ID: 2, Name: "Run", Color: "#feca57"},
	}, today)
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestCursorMovement(t *testing.T) {
	m := New(80, 20)
	m.SetView(sampleView())

	if row, col := m.Cursor(); row != 0 || col != 6 {
		t.Fatalf("initial cursor = %d,%d, want 0,6 (today)", row, col)
	}

	m, _ = press(m, "down", "down", "left", "left")
	if row, col := m.Cursor(); row != 1 || col != 4 {
		t.Errorf("cursor = %d,%d, want 1,4", row, col)
	}

	m, _ = press(m, "right", "right", "right", "up", "up")
	if row, col := m.Cursor(); row != 0 || col != 6 {
		t.Errorf("cursor should clamp, got %d,%d", row, col)
	}
}

func TestToggleEmitsSelectedCell(t *testing.T) {
	m := New(80, 20)
	m.SetView(sampleView())

	m, cmd := press(m, "down", "left", "space")
	if cmd == nil {
		t.Fatal("toggle produced no command")
	}
	msg, ok := cmd().(ToggleDayMsg)
	if !ok {
		t.Fatalf("unexpected message %#v", msg)
	}
	if msg.ID != 2 || msg.Date != "2024-03-09" {
		t.Errorf("ToggleDayMsg = %+v", msg)
	}
}

func TestActionMessages(t *testing.T) {
	m := New(80, 20)
	m.SetView(sampleView())

	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"a", AddHabitMsg{}},
		{"e", EditHabitMsg{ID: 1}},
		{"d", DeleteHabitMsg{ID: 1}},
	}
	for _, tt := range tests {
		_, cmd := press(m, tt.key)
		if cmd == nil {
			t.Fatalf("%s produced no command", tt.key)
		}
		if got := cmd(); got != tt.want {
			t.Errorf("%s -> %#v, want %#v", tt.key, got, tt.want)
		}
	}
}

func TestEmptyView(t *testing.T) {
	m := New(80, 20)
	m.SetView(view.Habits(nil, time.Now()))

	_, cmd := press(m, "e")
	if cmd != nil {
		t.Error("edit with no habits should do nothing")
	}
	if _, cmd := press(m, "a"); cmd == nil {
		t.Error("add must work from the empty state")
	}
}

func TestTextColorFor(t *testing.T) {
	tests := []struct {
		bg   string
		want string
	}{
		{"#ffffff", "#000000"},
		{"#feca57", "#000000"},
		{"#000000", "#ffffff"},
		{"#333399", "#ffffff"},
		{"not-a-color", "#ffffff"},
	}
	for _, tt := range tests {
		if got := TextColorFor(tt.bg); got != tt.want {
			t.Errorf("TextColorFor(%q) = %q, want %q", tt.bg, got, tt.want)
		}
	}
}
