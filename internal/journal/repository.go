package journal

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/utils"
	"github.com/julianstephens/daybook/internal/validation"
)

var ErrEntryRequired = errors.New("journal entry text is required")

// EntryInput carries the user-editable fields of a journal entry. An empty
// Date means today.
type EntryInput struct {
	Date  string
	Title string
	Mood  models.Mood
	Entry string
}

// Repository owns the journal, kept sorted newest date first.
type Repository struct {
	store    storage.Provider
	strategy storage.Strategy
	clock    utils.Clock

	entries []models.JournalEntry
	lastID  int64
}

type Option func(*Repository)

func WithClock(clock utils.Clock) Option {
	return func(r *Repository) { r.clock = clock }
}

func WithStrategy(s storage.Strategy) Option {
	return func(r *Repository) { r.strategy = s }
}

func New(store storage.Provider, opts ...Option) *Repository {
	r := &Repository{
		store:    store,
		strategy: storage.FullRewrite{},
		clock:    utils.SystemClock,
		entries:  []models.JournalEntry{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) Load() error {
	entries, err := storage.LoadCollection[models.JournalEntry](r.store, constants.JournalKey)
	if err != nil {
		return err
	}
	r.lastID = 0
	for _, e := range entries {
		r.lastID = max(r.lastID, e.ID)
	}
	r.entries = entries
	logger.Debug("Loaded journal", "count", len(entries))
	return nil
}

func (r *Repository) SaveAll() error {
	return r.strategy.Flush(r.store, constants.JournalKey, r.entries)
}

func (r *Repository) commit(next []models.JournalEntry) error {
	if err := r.strategy.Flush(r.store, constants.JournalKey, next); err != nil {
		return err
	}
	r.entries = next
	return nil
}

// sortByDate orders entries newest date first. Entries sharing a date keep
// their relative order.
func sortByDate(entries []models.JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

func (r *Repository) All() []models.JournalEntry {
	return slices.Clone(r.entries)
}

func (r *Repository) Len() int {
	return len(r.entries)
}

func (r *Repository) index(id int64) int {
	return slices.IndexFunc(r.entries, func(e models.JournalEntry) bool { return e.ID == id })
}

func (r *Repository) Get(id int64) (models.JournalEntry, bool) {
	i := r.index(id)
	if i < 0 {
		return models.JournalEntry{}, false
	}
	return r.entries[i], true
}

func (r *Repository) normalize(in EntryInput) (EntryInput, error) {
	if strings.TrimSpace(in.Entry) == "" {
		return in, ErrEntryRequired
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Date = strings.TrimSpace(in.Date)
	if in.Date == "" {
		in.Date = utils.FormatDate(r.clock())
	}
	if err := validation.ValidateDate(in.Date); err != nil {
		return in, err
	}
	if err := validation.ValidateMood(in.Mood); err != nil {
		return in, err
	}
	return in, nil
}

// Create adds an entry and re-sorts the journal.
func (r *Repository) Create(input EntryInput) (models.JournalEntry, error) {
	in, err := r.normalize(input)
	if err != nil {
		return models.JournalEntry{}, err
	}

	now := r.clock()
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	e := models.JournalEntry{
		ID:        id,
		Date:      in.Date,
		Title:     in.Title,
		Mood:      in.Mood,
		Entry:     in.Entry,
		CreatedAt: now,
	}

	next := append(slices.Clone(r.entries), e)
	sortByDate(next)
	if err := r.commit(next); err != nil {
		return models.JournalEntry{}, fmt.Errorf("create journal entry: %w", err)
	}
	r.lastID = id
	logger.Info("Created journal entry", "id", id, "date", e.Date)
	return e, nil
}

// Update replaces date, title, mood and body. The id and creation time are
// kept.
func (r *Repository) Update(id int64, input EntryInput) (bool, error) {
	i := r.index(id)
	if i < 0 {
		logger.Debug("Update of unknown journal entry ignored", "id", id)
		return false, nil
	}
	in, err := r.normalize(input)
	if err != nil {
		return false, err
	}

	next := slices.Clone(r.entries)
	e := &next[i]
	e.Date = in.Date
	e.Title = in.Title
	e.Mood = in.Mood
	e.Entry = in.Entry
	sortByDate(next)

	if err := r.commit(next); err != nil {
		return false, fmt.Errorf("update journal entry %d: %w", id, err)
	}
	logger.Info("Updated journal entry", "id", id)
	return true, nil
}

func (r *Repository) Delete(id int64) (bool, error) {
	i := r.index(id)
	if i < 0 {
		logger.Debug("Delete of unknown journal entry ignored", "id", id)
		return false, nil
	}

	next := slices.Delete(slices.Clone(r.entries), i, i+1)
	if err := r.commit(next); err != nil {
		return false, fmt.Errorf("delete journal entry %d: %w", id, err)
	}
	logger.Info("Deleted journal entry", "id", id)
	return true, nil
}
