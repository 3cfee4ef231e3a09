package models

import (
	"encoding/json"
	"time"
)

type Mood string

const (
	MoodNone  Mood = ""
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodBad   Mood = "bad"
)

// Moods lists the selectable moods in display order.
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodBad}

var moodGlyphs = map[Mood]string{
	MoodGreat: "😊",
	MoodGood:  "🙂",
	MoodOkay:  "😐",
	MoodBad:   "😔",
}

// Valid reports whether m is unset or one of the known moods.
func (m Mood) Valid() bool {
	if m == MoodNone {
		return true
	}
	_, ok := moodGlyphs[m]
	return ok
}

// Glyph returns the display glyph for m, or "" when unset or unknown.
func (m Mood) Glyph() string {
	return moodGlyphs[m]
}

// MarshalJSON encodes an unset mood as null.
func (m Mood) MarshalJSON() ([]byte, error) {
	if m == MoodNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

func (m *Mood) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = MoodNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = Mood(s)
	return nil
}

// JournalEntry is a diary record for a specific date
type JournalEntry struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	Title     string    `json:"title"`
	Mood      Mood      `json:"mood"`
	Entry     string    `json:"entry"`
	CreatedAt time.Time `json:"createdAt"`
}
