// Package app wires configuration, storage and the repositories together for
// the CLI and the TUI.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/daybook/internal/backup"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/habits"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/lock"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/utils"
)

type App struct {
	Config  config.Config
	Store   storage.Provider
	Habits  *habits.Repository
	Journal *journal.Repository
	Backups *backup.Manager

	clock utils.Clock
	lock  *lock.Lock
}

type options struct {
	store storage.Provider
	clock utils.Clock
	lock  bool
}

type Option func(*options)

// WithStore uses an already constructed provider instead of opening the
// configured location.
func WithStore(p storage.Provider) Option {
	return func(o *options) { o.store = p }
}

func WithClock(clock utils.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithLock takes the advisory lockfile in the data directory for the
// lifetime of the App.
func WithLock() Option {
	return func(o *options) { o.lock = true }
}

// Open loads (or initializes) the configured store and both repositories.
func Open(cfg config.Config, opts ...Option) (*App, error) {
	o := options{clock: utils.SystemClock}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg, Store: o.store}

	loc := cfg.Location()
	clock := o.clock
	a.clock = func() time.Time { return clock().In(loc) }

	if o.lock {
		l, err := lock.Acquire(cfg.DataDir())
		if err != nil {
			return nil, err
		}
		a.lock = l
	}

	if a.Store == nil {
		store, err := storage.Open(cfg.Store)
		if err != nil {
			a.releaseLock()
			return nil, err
		}
		a.Store = store
	}
	if err := storage.LoadOrInit(a.Store); err != nil {
		a.releaseLock()
		return nil, fmt.Errorf("failed to open store %s: %w", a.Store.GetConfigPath(), err)
	}

	a.Habits = habits.New(a.Store,
		habits.WithClock(a.clock),
		habits.WithDefaultColor(cfg.DefaultColor),
	)
	a.Journal = journal.New(a.Store, journal.WithClock(a.clock))
	a.Backups = backup.NewManager(a.Store, cfg.DataDir()).WithClock(a.clock)

	if err := a.Reload(); err != nil {
		_ = a.Close()
		return nil, err
	}
	logger.Debug("Opened store", "location", a.Store.GetConfigPath(), "habits", a.Habits.Len(), "entries", a.Journal.Len())
	return a, nil
}

// Reload re-reads both collections from the store.
func (a *App) Reload() error {
	if err := a.Habits.Load(); err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	if err := a.Journal.Load(); err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}
	return nil
}

// Now is the current time in the configured timezone.
func (a *App) Now() time.Time {
	return a.clock()
}

func (a *App) Today() string {
	return utils.FormatDate(a.clock())
}

// AutomaticBackup snapshots the store and only logs failures.
func (a *App) AutomaticBackup() {
	if _, err := a.Backups.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (a *App) releaseLock() error {
	if a.lock == nil {
		return nil
	}
	err := a.lock.Release()
	a.lock = nil
	return err
}

func (a *App) Close() error {
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	errs = append(errs, a.releaseLock())
	return errors.Join(errs...)
}
