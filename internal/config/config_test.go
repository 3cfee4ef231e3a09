package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.File != "" {
		t.Errorf("expected no config file, got %s", cfg.File)
	}
	if cfg.DefaultColor != constants.DefaultColor {
		t.Errorf("expected default color %s, got %s", constants.DefaultColor, cfg.DefaultColor)
	}
	if len(cfg.Palette) != len(constants.Palette) {
		t.Errorf("expected default palette, got %v", cfg.Palette)
	}
	if cfg.Chart.Height != constants.ChartHeight {
		t.Errorf("expected chart height %d, got %d", constants.ChartHeight, cfg.Chart.Height)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `store: ` + filepath.Join(dir, "store.json") + `
timezone: UTC
palette:
  - "#ff0000"
chart:
  width: 500
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("DAYBOOK_DEBUG", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.File != path {
		t.Errorf("expected config file %s, got %s", path, cfg.File)
	}
	if !cfg.Debug {
		t.Error("expected DAYBOOK_DEBUG to enable debug")
	}
	if cfg.Chart.Width != 500 {
		t.Errorf("expected chart width 500, got %d", cfg.Chart.Width)
	}
	if len(cfg.Palette) != 1 || cfg.Palette[0] != "#ff0000" {
		t.Errorf("unexpected palette: %v", cfg.Palette)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", cfg.Location())
	}
	if cfg.DataDir() != dir {
		t.Errorf("expected data dir %s, got %s", dir, cfg.DataDir())
	}
}

func TestExpandPath(t *testing.T) {
	conn := "postgres://me@localhost:5432/daybook"
	if got, _ := ExpandPath(conn); got != conn {
		t.Errorf("expected connection string unchanged, got %s", got)
	}

	got, err := ExpandPath("~/daybook.db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "~/daybook.db" {
		t.Error("expected ~ to be expanded")
	}
}

func TestDataDirForDirectoryStore(t *testing.T) {
	cfg := Default()
	cfg.Store = "dir:///var/lib/daybook/data"
	if got := cfg.DataDir(); got != "/var/lib/daybook" {
		t.Errorf("expected /var/lib/daybook, got %s", got)
	}
}

func TestLoadPaletteReplacesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "palette:\n  - \"#ff0000\"\n  - \"#00ff00\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"#ff0000", "#00ff00"}
	if len(cfg.Palette) != len(want) {
		t.Fatalf("expected palette %v, got %v", want, cfg.Palette)
	}
	for i := range want {
		if cfg.Palette[i] != want[i] {
			t.Errorf("palette[%d] = %s, want %s", i, cfg.Palette[i], want[i])
		}
	}
	if cfg.Reminder.Title != Default().Reminder.Title || !cfg.Reminder.Enabled {
		t.Errorf("expected reminder defaults to survive, got %+v", cfg.Reminder)
	}
	if cfg.Chart.Width != constants.ChartWidth {
		t.Errorf("expected default chart width, got %d", cfg.Chart.Width)
	}
}
