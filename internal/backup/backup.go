package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/utils"
)

const timestampFormat = "20060102-150405"

// Documents are the keys captured in every snapshot.
var Documents = []string{constants.HabitsKey, constants.JournalKey}

// Snapshot is the on-disk backup format.
type Snapshot struct {
	ID        string                     `json:"id"`
	CreatedAt time.Time                  `json:"createdAt"`
	Source    string                     `json:"source,omitempty"`
	Documents map[string]json.RawMessage `json:"documents"`
}

// BackupInfo describes one backup file
type BackupInfo struct {
	Path      string
	ID        string
	Timestamp time.Time
	Size      int64
	Habits    int
	Entries   int
}

// Manager writes snapshots of the store's documents into a backup directory
type Manager struct {
	store     storage.Provider
	backupDir string
	clock     utils.Clock
}

// NewManager keeps backups in <dataDir>/backups.
func NewManager(store storage.Provider, dataDir string) *Manager {
	return &Manager{
		store:     store,
		backupDir: filepath.Join(dataDir, constants.BackupDirName),
		clock:     utils.SystemClock,
	}
}

// WithClock replaces the clock used to name backups.
func (m *Manager) WithClock(clock utils.Clock) *Manager {
	m.clock = clock
	return m
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skips rotation when called from a restore so the pre-restore
// snapshot cannot push out the one being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := m.clock()
	snap := Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Source:    m.store.GetConfigPath(),
		Documents: make(map[string]json.RawMessage, len(Documents)),
	}
	for _, key := range Documents {
		data, err := m.store.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			data = []byte("[]")
		} else if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", key, err)
		}
		snap.Documents[key] = data
	}

	path, err := m.uniquePath(now)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Created backup", "path", path, "id", snap.ID)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return path, nil
}

func (m *Manager) uniquePath(now time.Time) (string, error) {
	stamp := now.Format(timestampFormat)
	path := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, counter, constants.BackupFileSuffix))
	}
}

// parseName extracts the timestamp and collision counter from a backup file name.
func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	counter := 0
	if len(stamp) > len(timestampFormat) {
		n, err := strconv.Atoi(strings.TrimPrefix(stamp[len(timestampFormat):], "-"))
		if err != nil {
			return time.Time{}, 0, false
		}
		counter = n
		stamp = stamp[:len(timestampFormat)]
	}

	ts, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, counter, true
}

// ListBackups returns backups newest first. Files that are not readable
// snapshots are skipped.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type ranked struct {
		BackupInfo
		counter int
	}
	var found []ranked
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, counter, ok := parseName(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		snap, err := readSnapshot(path)
		if err != nil {
			logger.Debug("Skipping unreadable backup", "path", path, "error", err)
			continue
		}
		habits, entries := snap.counts()

		found = append(found, ranked{
			BackupInfo: BackupInfo{
				Path:      path,
				ID:        snap.ID,
				Timestamp: ts,
				Size:      info.Size(),
				Habits:    habits,
				Entries:   entries,
			},
			counter: counter,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].Timestamp.Equal(found[j].Timestamp) {
			return found[i].Timestamp.After(found[j].Timestamp)
		}
		return found[i].counter > found[j].counter
	})

	backups := make([]BackupInfo, len(found))
	for i, f := range found {
		backups[i] = f.BackupInfo
	}
	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

func readSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("not a backup file: %w", err)
	}
	if snap.Documents == nil {
		return nil, errors.New("backup has no documents")
	}
	return snap, nil
}

func (s *Snapshot) counts() (habits, entries int) {
	var h []json.RawMessage
	var e []json.RawMessage
	_ = json.Unmarshal(s.Documents[constants.HabitsKey], &h)
	_ = json.Unmarshal(s.Documents[constants.JournalKey], &e)
	return len(h), len(e)
}

// verify checks that every captured document decodes as its collection type.
func (s *Snapshot) verify() error {
	for _, key := range Documents {
		raw, ok := s.Documents[key]
		if !ok {
			return fmt.Errorf("backup is missing the %s document", key)
		}
		var err error
		switch key {
		case constants.HabitsKey:
			var habits []models.Habit
			err = json.Unmarshal(raw, &habits)
		case constants.JournalKey:
			var entries []models.JournalEntry
			err = json.Unmarshal(raw, &entries)
		}
		if err != nil {
			return fmt.Errorf("%s document is invalid: %w", key, err)
		}
	}
	return nil
}

// RestoreBackup replaces the store's documents with those in the backup at
// path, after snapshotting the current state. Loaded repositories must be
// reloaded afterwards.
func (m *Manager) RestoreBackup(path string) (string, error) {
	snap, err := readSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("backup file does not exist: %s", path)
		}
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if err := snap.verify(); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	preRestore, err := m.createBackup(true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current data before restore: %w", err)
	}

	for _, key := range Documents {
		if err := m.store.Put(key, snap.Documents[key]); err != nil {
			return preRestore, fmt.Errorf("failed to restore %s (current data saved to %s): %w", key, filepath.Base(preRestore), err)
		}
	}
	logger.Info("Restored backup", "path", path, "id", snap.ID)
	return preRestore, nil
}

// Resolve accepts a backup path, file name, or snapshot id and returns the
// matching file.
func (m *Manager) Resolve(ref string) (string, error) {
	if _, err := os.Stat(ref); err == nil {
		return ref, nil
	}
	candidate := filepath.Join(m.backupDir, ref)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	backups, err := m.ListBackups()
	if err != nil {
		return "", err
	}
	for _, b := range backups {
		if b.ID == ref || strings.HasPrefix(b.ID, ref) && len(ref) >= 8 {
			return b.Path, nil
		}
	}
	return "", fmt.Errorf("no backup matches %q", ref)
}
