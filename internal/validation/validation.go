package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidMood  = errors.New("invalid mood")
)

// NormalizeColor canonicalizes hex colors to lowercase #rrggbb. Empty input
// stays empty so callers can apply their default; other freeform values (CSS
// names and the like) are kept verbatim.
func NormalizeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" || !strings.HasPrefix(color, "#") {
		return color, nil
	}
	c, err := colorful.Hex(color)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return c.Hex(), nil
}

func ValidateDate(date string) error {
	if !utils.ValidateDate(date) {
		return fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, date)
	}
	return nil
}

func ValidateMood(m models.Mood) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q (expected one of great, good, okay, bad)", ErrInvalidMood, string(m))
	}
	return nil
}

// ConflictType represents the kind of problem found in stored data
type ConflictType string

const (
	ConflictDuplicateHabitID   ConflictType = "duplicate_habit_id"
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictMissingHabitName   ConflictType = "missing_habit_name"
	ConflictInvalidColor       ConflictType = "invalid_color"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictDuplicateEntryID   ConflictType = "duplicate_entry_id"
	ConflictMissingEntryBody   ConflictType = "missing_entry_body"
	ConflictInvalidMood        ConflictType = "invalid_mood"
	ConflictEntryOrder         ConflictType = "entry_order"
)

// Conflict is a single problem found in the habits or journal document
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string
	IDs         []int64
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks stored documents for problems the repositories would not
// produce themselves, such as hand-edited files or restored backups.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ids := make(map[int64][]string)
	names := make(map[string][]int64)
	var order []string
	for _, h := range habits {
		ids[h.ID] = append(ids[h.ID], h.Name)

		name := strings.TrimSpace(h.Name)
		if name == "" {
			result.add(Conflict{
				Type:        ConflictMissingHabitName,
				Description: fmt.Sprintf("Habit %d has no name", h.ID),
				IDs:         []int64{h.ID},
			})
		} else {
			key := strings.ToLower(name)
			if _, seen := names[key]; !seen {
				order = append(order, key)
			}
			names[key] = append(names[key], h.ID)
		}

		if _, err := NormalizeColor(h.Color); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidColor,
				Description: fmt.Sprintf("Habit %q has invalid color %q", h.Name, h.Color),
				Items:       []string{h.Name},
				IDs:         []int64{h.ID},
			})
		}

		dates := make([]string, 0, len(h.Completions))
		for date := range h.Completions {
			if !utils.ValidateDate(date) {
				dates = append(dates, date)
			}
		}
		sort.Strings(dates)
		for _, date := range dates {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Habit %q has a completion on invalid date %q", h.Name, date),
				Items:       []string{h.Name, date},
				IDs:         []int64{h.ID},
			})
		}
	}

	for _, key := range order {
		if group := names[key]; len(group) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", key, group),
				Items:       []string{key},
				IDs:         group,
			})
		}
	}

	dupIDs := make([]int64, 0)
	for id, group := range ids {
		if len(group) > 1 {
			dupIDs = append(dupIDs, id)
		}
	}
	sort.Slice(dupIDs, func(i, j int) bool { return dupIDs[i] < dupIDs[j] })
	for _, id := range dupIDs {
		result.add(Conflict{
			Type:        ConflictDuplicateHabitID,
			Description: fmt.Sprintf("Habit ID %d is used by %d habits: %v", id, len(ids[id]), ids[id]),
			Items:       ids[id],
			IDs:         []int64{id},
		})
	}

	return result
}

func (v *Validator) ValidateEntries(entries []models.JournalEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[int64]int)
	for i, e := range entries {
		seen[e.ID]++
		if seen[e.ID] == 2 {
			result.add(Conflict{
				Type:        ConflictDuplicateEntryID,
				Description: fmt.Sprintf("Journal entry ID %d appears more than once", e.ID),
				IDs:         []int64{e.ID},
			})
		}

		if strings.TrimSpace(e.Entry) == "" {
			result.add(Conflict{
				Type:        ConflictMissingEntryBody,
				Description: fmt.Sprintf("Journal entry %d (%s) has an empty body", e.ID, e.Date),
				IDs:         []int64{e.ID},
			})
		}

		if err := ValidateDate(e.Date); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Journal entry %d has invalid date %q", e.ID, e.Date),
				Items:       []string{e.Date},
				IDs:         []int64{e.ID},
			})
		}

		if err := ValidateMood(e.Mood); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidMood,
				Description: fmt.Sprintf("Journal entry %d has unknown mood %q", e.ID, string(e.Mood)),
				Items:       []string{string(e.Mood)},
				IDs:         []int64{e.ID},
			})
		}

		// YYYY-MM-DD compares lexically
		if i > 0 && utils.ValidateDate(entries[i-1].Date) && utils.ValidateDate(e.Date) && entries[i-1].Date < e.Date {
			result.add(Conflict{
				Type:        ConflictEntryOrder,
				Description: fmt.Sprintf("Journal entry %d (%s) is listed after an older entry (%s)", e.ID, e.Date, entries[i-1].Date),
				IDs:         []int64{entries[i-1].ID, e.ID},
			})
		}
	}

	return result
}
