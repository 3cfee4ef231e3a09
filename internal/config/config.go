package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/utils"
)

type ChartConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type ReminderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Title   string `mapstructure:"title"`
}

type Config struct {
	Store        string         `mapstructure:"store"`
	Debug        bool           `mapstructure:"debug"`
	Timezone     string         `mapstructure:"timezone"`
	DefaultColor string         `mapstructure:"default_color"`
	Palette      []string       `mapstructure:"palette"`
	Chart        ChartConfig    `mapstructure:"chart"`
	Reminder     ReminderConfig `mapstructure:"reminder"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

func Default() Config {
	return Config{
		Store:        constants.DefaultStorePath,
		Timezone:     "Local",
		DefaultColor: constants.DefaultColor,
		Palette:      append([]string(nil), constants.Palette...),
		Chart: ChartConfig{
			Width:  constants.ChartWidth,
			Height: constants.ChartHeight,
		},
		Reminder: ReminderConfig{
			Enabled: true,
			Title:   "Habit check-in",
		},
	}
}

// DefaultPath returns the config file location under the user's config dir.
func DefaultPath() (string, error) {
	dir, err := homedir.Expand(constants.DefaultConfigDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// Load reads the YAML config at path (or the default location when path is
// empty) and overlays DAYBOOK_* environment variables. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	} else {
		p, err := homedir.Expand(path)
		if err != nil {
			return cfg, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store", cfg.Store)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("default_color", cfg.DefaultColor)
	v.SetDefault("palette", cfg.Palette)
	v.SetDefault("chart.width", cfg.Chart.Width)
	v.SetDefault("chart.height", cfg.Chart.Height)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.title", cfg.Reminder.Title)

	var file string
	if err := v.ReadInConfig(); err == nil {
		file = v.ConfigFileUsed()
	}

	// decode into a zero value: slices from the file replace the defaults
	// instead of being merged over them
	var loaded Config
	if err := v.Unmarshal(&loaded); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}
	loaded.File = file

	if err := loaded.normalize(); err != nil {
		return loaded, err
	}
	return loaded, nil
}

func (c *Config) normalize() error {
	store, err := ExpandPath(c.Store)
	if err != nil {
		return fmt.Errorf("invalid store location %q: %w", c.Store, err)
	}
	c.Store = store

	if len(c.Palette) == 0 {
		c.Palette = append([]string(nil), constants.Palette...)
	}
	if strings.TrimSpace(c.DefaultColor) == "" {
		c.DefaultColor = c.Palette[0]
	}
	if c.Chart.Width <= 2*constants.ChartPadding {
		c.Chart.Width = constants.ChartWidth
	}
	if c.Chart.Height <= 2*constants.ChartPadding {
		c.Chart.Height = constants.ChartHeight
	}
	return nil
}

// ExpandPath expands a leading ~ in filesystem locations. Connection strings
// and other URLs are returned unchanged.
func ExpandPath(location string) (string, error) {
	if strings.Contains(location, "://") {
		return location, nil
	}
	return homedir.Expand(location)
}

// DataDir is the directory holding logs, backups and the lockfile. For file
// backed stores it is the store's directory; for remote stores it is the
// config directory.
func (c Config) DataDir() string {
	if strings.Contains(c.Store, "://") && !strings.HasPrefix(c.Store, "dir://") {
		if dir, err := homedir.Expand(constants.DefaultConfigDir); err == nil {
			return dir
		}
		return "."
	}
	location := strings.TrimPrefix(c.Store, "dir://")
	if filepath.Ext(location) == "" {
		// diskv directory store
		return filepath.Dir(filepath.Clean(location))
	}
	return filepath.Dir(location)
}

// Location returns the configured timezone, falling back to local time.
func (c Config) Location() *time.Location {
	loc, err := utils.LoadLocation(strings.TrimSpace(c.Timezone))
	if err != nil {
		return time.Local
	}
	return loc
}
