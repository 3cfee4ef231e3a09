package models

import (
	"encoding/json"
	"maps"
)

// Status is the per-day completion state of a habit
type Status int

const (
	StatusUnrecorded Status = iota
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unrecorded"
	}
}

// Next returns the status that follows s in the toggle ring
// unrecorded -> completed -> failed -> unrecorded. Values outside the
// ring advance to completed.
func (s Status) Next() Status {
	switch s {
	case StatusCompleted:
		return StatusFailed
	case StatusFailed:
		return StatusUnrecorded
	default:
		return StatusCompleted
	}
}

// ParseStatus maps a stored status tag to a Status. Only the two recorded
// tags are accepted.
func ParseStatus(tag string) (Status, bool) {
	switch tag {
	case "completed":
		return StatusCompleted, true
	case "failed":
		return StatusFailed, true
	}
	return StatusUnrecorded, false
}

// Completions maps a YYYY-MM-DD date to its recorded status. Unrecorded days
// are absent from the map.
type Completions map[string]Status

// Get returns the status recorded for date.
func (c Completions) Get(date string) Status {
	if s, ok := c[date]; ok {
		return s
	}
	return StatusUnrecorded
}

// Set records status for date. Setting StatusUnrecorded removes the key.
func (c Completions) Set(date string, status Status) {
	if status != StatusCompleted && status != StatusFailed {
		delete(c, date)
		return
	}
	c[date] = status
}

func (c Completions) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(c))
	for date, s := range c {
		if s == StatusCompleted || s == StatusFailed {
			out[date] = s.String()
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON keeps the dates tagged completed or failed. Any other value,
// including non-string ones, is dropped.
func (c *Completions) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Completions, len(raw))
	for date, v := range raw {
		tag, ok := v.(string)
		if !ok {
			continue
		}
		if s, ok := ParseStatus(tag); ok {
			out[date] = s
		}
	}
	*c = out
	return nil
}

// Habit represents a recurring practice tracked per calendar day
type Habit struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Color       string      `json:"color"`
	Completions Completions `json:"completions"`
}

// Clone returns a copy of h that shares no completion state with it.
func (h Habit) Clone() Habit {
	c := h
	c.Completions = maps.Clone(h.Completions)
	if c.Completions == nil {
		c.Completions = Completions{}
	}
	return c
}
