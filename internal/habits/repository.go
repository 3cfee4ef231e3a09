package habits

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/stats"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/utils"
	"github.com/julianstephens/daybook/internal/validation"
)

var ErrNameRequired = errors.New("habit name is required")

// HabitInput carries the user-editable fields of a habit.
type HabitInput struct {
	Name        string
	Description string
	Icon        string
	Color       string
}

// Repository owns the habit collection. Every mutation is flushed to the
// store before it becomes visible; a failed flush leaves the collection as
// it was.
type Repository struct {
	store        storage.Provider
	strategy     storage.Strategy
	clock        utils.Clock
	defaultColor string

	habits []models.Habit
	lastID int64
}

type Option func(*Repository)

func WithClock(clock utils.Clock) Option {
	return func(r *Repository) { r.clock = clock }
}

func WithStrategy(s storage.Strategy) Option {
	return func(r *Repository) { r.strategy = s }
}

// WithDefaultColor sets the color given to habits created without one.
func WithDefaultColor(color string) Option {
	return func(r *Repository) { r.defaultColor = color }
}

func New(store storage.Provider, opts ...Option) *Repository {
	r := &Repository{
		store:        store,
		strategy:     storage.FullRewrite{},
		clock:        utils.SystemClock,
		defaultColor: constants.DefaultColor,
		habits:       []models.Habit{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the in-memory collection with the stored document.
func (r *Repository) Load() error {
	habits, err := storage.LoadCollection[models.Habit](r.store, constants.HabitsKey)
	if err != nil {
		return err
	}
	r.lastID = 0
	for i := range habits {
		if habits[i].Completions == nil {
			habits[i].Completions = models.Completions{}
		}
		r.lastID = max(r.lastID, habits[i].ID)
	}
	r.habits = habits
	logger.Debug("Loaded habits", "count", len(habits))
	return nil
}

// SaveAll writes the current collection as-is.
func (r *Repository) SaveAll() error {
	return r.strategy.Flush(r.store, constants.HabitsKey, r.habits)
}

func (r *Repository) commit(next []models.Habit) error {
	if err := r.strategy.Flush(r.store, constants.HabitsKey, next); err != nil {
		return err
	}
	r.habits = next
	return nil
}

// All returns a copy of the habits in insertion order.
func (r *Repository) All() []models.Habit {
	out := make([]models.Habit, len(r.habits))
	for i, h := range r.habits {
		out[i] = h.Clone()
	}
	return out
}

func (r *Repository) Len() int {
	return len(r.habits)
}

func (r *Repository) index(id int64) int {
	return slices.IndexFunc(r.habits, func(h models.Habit) bool { return h.ID == id })
}

func (r *Repository) Get(id int64) (models.Habit, bool) {
	i := r.index(id)
	if i < 0 {
		return models.Habit{}, false
	}
	return r.habits[i].Clone(), true
}

func (r *Repository) normalize(in HabitInput) (HabitInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, ErrNameRequired
	}
	in.Description = strings.TrimSpace(in.Description)
	in.Icon = strings.TrimSpace(in.Icon)

	color, err := validation.NormalizeColor(in.Color)
	if err != nil {
		return in, err
	}
	if color == "" {
		color = r.defaultColor
	}
	in.Color = color
	return in, nil
}

func (r *Repository) nextID() int64 {
	id := r.clock().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	return id
}

// Create appends a new habit with no recorded days.
func (r *Repository) Create(input HabitInput) (models.Habit, error) {
	in, err := r.normalize(input)
	if err != nil {
		return models.Habit{}, err
	}

	h := models.Habit{
		ID:          r.nextID(),
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
		Completions: models.Completions{},
	}

	next := append(slices.Clone(r.habits), h)
	if err := r.commit(next); err != nil {
		return models.Habit{}, fmt.Errorf("create habit: %w", err)
	}
	r.lastID = h.ID
	logger.Info("Created habit", "id", h.ID, "name", h.Name)
	return h.Clone(), nil
}

// Update replaces the editable fields of habit id and keeps its recorded
// days. It reports false when no habit has that id.
func (r *Repository) Update(id int64, input HabitInput) (bool, error) {
	i := r.index(id)
	if i < 0 {
		logger.Debug("Update of unknown habit ignored", "id", id)
		return false, nil
	}
	in, err := r.normalize(input)
	if err != nil {
		return false, err
	}

	h := r.habits[i].Clone()
	h.Name = in.Name
	h.Description = in.Description
	h.Icon = in.Icon
	h.Color = in.Color

	next := slices.Clone(r.habits)
	next[i] = h
	if err := r.commit(next); err != nil {
		return false, fmt.Errorf("update habit %d: %w", id, err)
	}
	logger.Info("Updated habit", "id", id)
	return true, nil
}

func (r *Repository) Delete(id int64) (bool, error) {
	i := r.index(id)
	if i < 0 {
		logger.Debug("Delete of unknown habit ignored", "id", id)
		return false, nil
	}

	next := slices.Delete(slices.Clone(r.habits), i, i+1)
	if err := r.commit(next); err != nil {
		return false, fmt.Errorf("delete habit %d: %w", id, err)
	}
	logger.Info("Deleted habit", "id", id)
	return true, nil
}

// ToggleCompletion advances the status of date along the ring
// unrecorded -> completed -> failed -> unrecorded and returns the new status.
func (r *Repository) ToggleCompletion(id int64, date string) (models.Status, bool, error) {
	h, ok := r.Get(id)
	if !ok {
		logger.Debug("Toggle of unknown habit ignored", "id", id, "date", date)
		return models.StatusUnrecorded, false, nil
	}
	return r.SetStatus(id, date, h.Completions.Get(date).Next())
}

// SetStatus records status for date directly. StatusUnrecorded clears the day.
func (r *Repository) SetStatus(id int64, date string, status models.Status) (models.Status, bool, error) {
	if err := validation.ValidateDate(date); err != nil {
		return models.StatusUnrecorded, false, err
	}
	i := r.index(id)
	if i < 0 {
		logger.Debug("Status change of unknown habit ignored", "id", id, "date", date)
		return models.StatusUnrecorded, false, nil
	}

	h := r.habits[i].Clone()
	h.Completions.Set(date, status)

	next := slices.Clone(r.habits)
	next[i] = h
	if err := r.commit(next); err != nil {
		return r.habits[i].Completions.Get(date), false, fmt.Errorf("record %s for habit %d: %w", date, id, err)
	}
	logger.Debug("Recorded habit status", "id", id, "date", date, "status", status)
	return status, true, nil
}

func (r *Repository) StatsFor(h models.Habit) stats.HabitStats {
	return stats.ForHabit(h)
}
