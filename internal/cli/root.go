package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/daybook/internal/app"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Config config.Config
	Out    io.Writer

	// Options are appended when the store is opened; tests inject an
	// in-memory store and a fixed clock here.
	Options []app.Option

	app *app.App
}

func NewContext(cfg config.Config) *Context {
	return &Context{Config: cfg, Out: color.Output}
}

// Open loads the store and repositories. Mutating commands pass locked=true
// so that a running TUI is not overwritten behind its back.
func (c *Context) Open(locked bool) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	opts := append([]app.Option(nil), c.Options...)
	if locked {
		opts = append(opts, app.WithLock())
	}
	a, err := app.Open(c.Config, opts...)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *Context) Close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func (c *Context) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	_, _ = fmt.Fprintln(c.Out, args...)
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	bold      = color.New(color.Bold)
	faint     = color.New(color.Faint)
)

var isInteractive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var errNeedsConfirmation = errors.New("refusing to continue without confirmation; pass --yes")

// confirm asks a yes/no question on a terminal. Without a terminal the
// caller must have passed --yes.
func confirm(yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	if !isInteractive() {
		return false, errNeedsConfirmation
	}
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// resolveDate accepts YYYY-MM-DD, "today" or "yesterday".
func resolveDate(a *app.App, s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return a.Today(), nil
	case "yesterday":
		return utils.FormatDate(a.Now().AddDate(0, 0, -1)), nil
	}
	if !utils.ValidateDate(s) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD, 'today' or 'yesterday')", s)
	}
	return s, nil
}

func statusColor(s models.Status) *color.Color {
	switch s {
	case models.StatusCompleted:
		return okColor
	case models.StatusFailed:
		return failColor
	}
	return faint
}
