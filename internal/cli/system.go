package cli

import (
	"errors"
	"fmt"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/keyring"
	"github.com/julianstephens/daybook/internal/notify"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	a, err := ctx.Open(true)
	if err != nil {
		return err
	}

	a.AutomaticBackup()

	p := tea.NewProgram(tui.NewModel(a, ctx.Config), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *Context) error {
	ctx.printf("%s %s\n", constants.AppName, constants.Version)
	return nil
}

type RemindCmd struct {
	Date  string `help:"Day to check (YYYY-MM-DD, today, yesterday)." default:"today"`
	Quiet bool   `short:"q" help:"Only print when something is pending."`
}

func (c *RemindCmd) Run(ctx *Context) error {
	a, err := ctx.Open(false)
	if err != nil {
		return err
	}
	date, err := resolveDate(a, c.Date)
	if err != nil {
		return err
	}

	pending := notify.Pending(a.Habits.All(), date)
	if ctx.Config.Reminder.Enabled {
		if _, err := notify.Remind(ctx.Config.Reminder.Title, a.Habits.All(), date); err != nil {
			return err
		}
	}
	if len(pending) > 0 || !c.Quiet {
		ctx.println(notify.FormatReminder(pending))
	}
	return nil
}

type ConfigCmd struct {
	SetConnection    ConfigSetConnectionCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	ShowConnection   ConfigShowConnectionCmd   `cmd:"" help:"Show the stored connection string with the password masked."`
	DeleteConnection ConfigDeleteConnectionCmd `cmd:"" help:"Remove the stored connection string."`
}

type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if !storage.IsPostgres(c.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	if err := storage.ValidateConnString(c.ConnectionString); err != nil {
		return fmt.Errorf("invalid connection string: %w", err)
	}
	if storage.HasEmbeddedCredentials(c.ConnectionString) {
		ctx.println(warnColor.Sprint("Warning: connection string contains a password."))
		ctx.println("It will be stored as-is in the OS keyring.")
	}

	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}

	ctx.printf("%s Connection string stored in the OS keyring\n", okColor.Sprint("✓"))
	ctx.println("Set 'store: postgres://' (without credentials) in your config to use it.")
	return nil
}

type ConfigShowConnectionCmd struct{}

func (c *ConfigShowConnectionCmd) Run(ctx *Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring; use 'daybook config set-connection' to store one")
	}
	if err != nil {
		return err
	}
	ctx.println(maskPassword(connStr))
	return nil
}

type ConfigDeleteConnectionCmd struct{}

func (c *ConfigDeleteConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.printf("%s Connection string removed from the OS keyring\n", okColor.Sprint("✓"))
	return nil
}

func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.Scheme == "" {
		return "(key/value connection string, not shown)"
	}
	q := u.Query()
	if q.Has("password") {
		q.Set("password", "xxxxx")
		u.RawQuery = q.Encode()
	}
	return u.Redacted()
}
