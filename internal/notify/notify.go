package notify

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/julianstephens/daybook/internal/models"
)

var notifyFunc = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Info(title, message string) error {
	return notifyFunc(title, message)
}

// Pending returns the names of habits with nothing recorded on date.
func Pending(habits []models.Habit, date string) []string {
	var names []string
	for _, h := range habits {
		if h.Completions.Get(date) == models.StatusUnrecorded {
			names = append(names, h.Name)
		}
	}
	return names
}

func FormatReminder(pending []string) string {
	switch len(pending) {
	case 0:
		return "All habits are recorded for today."
	case 1:
		return fmt.Sprintf("%s is still unrecorded today.", pending[0])
	case 2, 3:
		return fmt.Sprintf("Still unrecorded today: %s.", strings.Join(pending, ", "))
	default:
		return fmt.Sprintf("Still unrecorded today: %s and %d more.", strings.Join(pending[:3], ", "), len(pending)-3)
	}
}

// Remind sends a desktop notification listing today's unrecorded habits.
// Nothing is sent when every habit is recorded.
func Remind(title string, habits []models.Habit, date string) ([]string, error) {
	pending := Pending(habits, date)
	if len(pending) == 0 {
		return nil, nil
	}
	if err := Info(title, FormatReminder(pending)); err != nil {
		return pending, fmt.Errorf("failed to send notification: %w", err)
	}
	return pending, nil
}
