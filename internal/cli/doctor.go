package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/daybook/internal/app"
	"github.com/julianstephens/daybook/internal/keyring"
	"github.com/julianstephens/daybook/internal/lock"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/validation"
)

type DoctorCmd struct{}

type checkResult int

const (
	checkOK checkResult = iota
	checkWarn
	checkFail
	checkSkip
)

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	report := func(name string, res checkResult, detail error) {
		switch res {
		case checkOK:
			ctx.printf("%s %s: OK\n", okColor.Sprint("✓"), name)
		case checkWarn:
			ctx.printf("%s %s: WARNING\n", warnColor.Sprint("⚠"), name)
		case checkFail:
			ctx.printf("%s %s: FAIL\n", failColor.Sprint("✗"), name)
			hasError = true
		case checkSkip:
			ctx.printf("%s %s: SKIPPED\n", faint.Sprint("⊘"), name)
		}
		if detail != nil {
			ctx.printf("   %v\n", detail)
		}
	}

	a, err := ctx.Open(false)
	if err != nil {
		report("Store reachable", checkFail, err)
	} else {
		report("Store reachable", checkOK, nil)
	}

	if a != nil {
		res, detail := checkSchemaVersion(a.Store)
		report("Schema version", res, detail)

		res, detail = checkBackupsPresent(a)
		report("Backups present", res, detail)

		res, detail = checkValidation(a)
		report("Data validation", res, detail)
	} else {
		report("Schema version", checkSkip, nil)
		report("Data validation", checkSkip, nil)
	}

	res, detail := checkLock(ctx.Config.DataDir())
	report("Lockfile", res, detail)

	if storage.IsPostgres(ctx.Config.Store) {
		if keyring.IsAvailable() {
			report("OS keyring", checkOK, nil)
		} else {
			report("OS keyring", checkWarn, errors.New("keyring unavailable; use DAYBOOK_DB_CONNECTION or .pgpass"))
		}
	}

	res, detail = checkClockTimezone(ctx)
	report("Clock/timezone", res, detail)

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(store storage.Provider) (checkResult, error) {
	v, ok := store.(storage.Versioned)
	if !ok {
		return checkOK, nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return checkFail, fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return checkFail, fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return checkFail, fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return checkOK, nil
}

func checkBackupsPresent(a *app.App) (checkResult, error) {
	backups, err := a.Backups.ListBackups()
	if err != nil {
		return checkWarn, fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return checkWarn, errors.New("no backups found; create one with 'daybook backup create'")
	}
	return checkOK, nil
}

func checkValidation(a *app.App) (checkResult, error) {
	v := validation.New()
	result := v.ValidateHabits(a.Habits.All())
	entries := v.ValidateEntries(a.Journal.All())
	result.Conflicts = append(result.Conflicts, entries.Conflicts...)
	if result.HasConflicts() {
		return checkFail, errors.New(result.FormatReport())
	}
	return checkOK, nil
}

func checkLock(dir string) (checkResult, error) {
	pid, alive, err := lock.Holder(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return checkOK, nil
	case errors.Is(err, lock.ErrIncomplete):
		return checkOK, errors.New("lockfile is being written by another daybook process")
	case err != nil:
		return checkWarn, fmt.Errorf("unreadable lockfile %s: %w", lock.Path(dir), err)
	case alive:
		return checkOK, fmt.Errorf("held by running daybook process %d", pid)
	default:
		return checkWarn, fmt.Errorf("stale lockfile from pid %d; it will be reclaimed on next write", pid)
	}
}

func checkClockTimezone(ctx *Context) (checkResult, error) {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return checkFail, fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	loc := ctx.Config.Location()
	if ctx.Config.Timezone != "" && ctx.Config.Timezone != "Local" && loc == time.Local {
		return checkWarn, fmt.Errorf("unknown timezone %q, using local time", ctx.Config.Timezone)
	}
	return checkOK, nil
}
