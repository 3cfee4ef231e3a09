package models

import (
	"encoding/json"
	"testing"
)

func TestStatusNextCycle(t *testing.T) {
	tests := []struct {
		from Status
		want Status
	}{
		{StatusUnrecorded, StatusCompleted},
		{StatusCompleted, StatusFailed},
		{StatusFailed, StatusUnrecorded},
		{Status(42), StatusCompleted},
	}

	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%v.Next() = %v, want %v", tt.from, got, tt.want)
		}
	}
}

func TestCompletionsSetRemovesUnrecorded(t *testing.T) {
	c := Completions{}
	c.Set("2024-03-01", StatusCompleted)
	c.Set("2024-03-01", StatusUnrecorded)

	if _, ok := c["2024-03-01"]; ok {
		t.Error("expected unrecorded status to remove the key")
	}
	if got := c.Get("2024-03-01"); got != StatusUnrecorded {
		t.Errorf("expected unrecorded, got %v", got)
	}
}

func TestCompletionsJSONUsesTwoTags(t *testing.T) {
	c := Completions{
		"2024-03-01": StatusCompleted,
		"2024-03-02": StatusFailed,
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("failed to marshal completions: %v", err)
	}
	want := `{"2024-03-01":"completed","2024-03-02":"failed"}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestCompletionsUnmarshalDropsUnknownTags(t *testing.T) {
	var c Completions
	if err := json.Unmarshal([]byte(`{"2024-03-01":"completed","2024-03-02":"skipped"}`), &c); err != nil {
		t.Fatalf("failed to unmarshal completions: %v", err)
	}

	if len(c) != 1 {
		t.Fatalf("expected 1 recorded day, got %d", len(c))
	}
	if got := c.Get("2024-03-02"); got.Next() != StatusCompleted {
		t.Errorf("expected unknown tag to toggle to completed, got %v", got.Next())
	}
}

func TestCompletionsUnmarshalDropsNonStringValues(t *testing.T) {
	var c Completions
	data := `{"2024-03-01":"failed","2024-03-02":1,"2024-03-03":null,"2024-03-04":{"x":true}}`
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("failed to unmarshal completions: %v", err)
	}

	if len(c) != 1 || c.Get("2024-03-01") != StatusFailed {
		t.Errorf("expected only the failed day to survive, got %v", c)
	}
}

func TestHabitCloneIsIndependent(t *testing.T) {
	h := Habit{ID: 1, Name: "Read", Completions: Completions{"2024-03-01": StatusCompleted}}
	c := h.Clone()
	c.Completions.Set("2024-03-02", StatusFailed)

	if len(h.Completions) != 1 {
		t.Errorf("clone mutated original completions: %v", h.Completions)
	}

	empty := Habit{ID: 2}.Clone()
	if empty.Completions == nil {
		t.Error("expected clone of nil completions to be an empty map")
	}
}

func TestMoodJSON(t *testing.T) {
	e := JournalEntry{ID: 1, Date: "2024-03-01", Entry: "hello"}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("failed to marshal entry: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to decode entry: %v", err)
	}
	if decoded["mood"] != nil {
		t.Errorf("expected unset mood to encode as null, got %v", decoded["mood"])
	}

	var back JournalEntry
	if err := json.Unmarshal([]byte(`{"id":2,"date":"2024-03-02","mood":"great","entry":"x","createdAt":"2024-03-02T10:00:00.000Z"}`), &back); err != nil {
		t.Fatalf("failed to unmarshal entry: %v", err)
	}
	if back.Mood != MoodGreat || back.Mood.Glyph() == "" {
		t.Errorf("expected great mood with glyph, got %q", back.Mood)
	}
	if back.CreatedAt.IsZero() {
		t.Error("expected createdAt to be parsed")
	}
}

func TestMoodValid(t *testing.T) {
	for _, m := range append([]Mood{MoodNone}, Moods...) {
		if !m.Valid() {
			t.Errorf("expected %q to be valid", m)
		}
	}
	if Mood("ecstatic").Valid() {
		t.Error("expected unknown mood to be invalid")
	}
}
