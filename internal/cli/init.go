package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/daybook/internal/backup"
	"github.com/julianstephens/daybook/internal/storage"
)

type InitCmd struct {
	Source string `help:"Copy habits and journal from another store location (file, dir:// or postgres connection)."`
}

func (c *InitCmd) Run(ctx *Context) error {
	a, err := ctx.Open(true)
	if err != nil {
		return err
	}
	ctx.printf("Initialized daybook storage at: %s\n", a.Store.GetConfigPath())

	if c.Source == "" {
		return nil
	}

	src, err := storage.Open(c.Source)
	if err != nil {
		return err
	}
	defer src.Close()
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to open source %s: %w", c.Source, err)
	}

	copied := 0
	for _, key := range backup.Documents {
		data, err := src.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if err := a.Store.Put(key, data); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		copied++
	}
	if err := a.Reload(); err != nil {
		return err
	}

	ctx.printf("%s Copied %d documents from %s (%d habits, %d journal entries)\n",
		okColor.Sprint("✓"), copied, src.GetConfigPath(), a.Habits.Len(), a.Journal.Len())
	return nil
}
