package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/daybook/internal/logger"
)

type jsonFile struct {
	Version   int                        `json:"version"`
	Documents map[string]json.RawMessage `json:"documents"`
}

// JSONStore keeps every document in a single JSON file that is rewritten in
// full on each Put.
type JSONStore struct {
	path string
	file *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.file = &jsonFile{
		Version:   1,
		Documents: make(map[string]json.RawMessage),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	file := &jsonFile{}
	if err := json.Unmarshal(data, file); err != nil {
		// Keep the unreadable file aside and start over with an empty store
		aside := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().Format("20060102-150405"))
		if renameErr := os.Rename(s.path, aside); renameErr != nil {
			return fmt.Errorf("failed to parse storage: %w", err)
		}
		logger.Warn("Storage file unreadable, starting empty", "path", s.path, "moved_to", aside, "error", err)
		file = &jsonFile{Version: 1}
	}

	if file.Documents == nil {
		file.Documents = make(map[string]json.RawMessage)
	}
	// files written by earlier versions were indented throughout
	for key, doc := range file.Documents {
		var buf bytes.Buffer
		if err := json.Compact(&buf, doc); err == nil {
			file.Documents[key] = buf.Bytes()
		}
	}
	s.file = file
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.Marshal(s.file)
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.file == nil {
		return nil, ErrNotLoaded
	}

	doc, ok := s.file.Documents[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), doc...), nil
}

func (s *JSONStore) Put(key string, value []byte) error {
	if s.file == nil {
		return ErrNotLoaded
	}
	if !json.Valid(value) {
		return fmt.Errorf("document %s is not valid JSON", key)
	}

	prev, had := s.file.Documents[key]
	s.file.Documents[key] = append(json.RawMessage(nil), value...)
	if err := s.save(); err != nil {
		if had {
			s.file.Documents[key] = prev
		} else {
			delete(s.file.Documents, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) Delete(key string) error {
	if s.file == nil {
		return ErrNotLoaded
	}

	prev, had := s.file.Documents[key]
	if !had {
		return nil
	}
	delete(s.file.Documents, key)
	if err := s.save(); err != nil {
		s.file.Documents[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.file == nil {
		return nil, ErrNotLoaded
	}

	keys := make([]string, 0, len(s.file.Documents))
	for k := range s.file.Documents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
