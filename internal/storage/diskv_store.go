package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const diskvCacheSize = 1 << 20

// DiskvStore keeps each document in its own file under a directory.
type DiskvStore struct {
	dir string
	kv  *diskv.Diskv
}

func NewDiskvStore(dir string) *DiskvStore {
	return &DiskvStore{
		dir: dir,
	}
}

func (s *DiskvStore) open() {
	s.kv = diskv.New(diskv.Options{
		BasePath:     s.dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: diskvCacheSize,
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *DiskvStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	s.open()
	return nil
}

func (s *DiskvStore) Load() error {
	info, err := os.Stat(s.dir)
	if os.IsNotExist(err) {
		return ErrNotInitialized
	}
	if err != nil {
		return fmt.Errorf("failed to stat store directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store location %s is not a directory", s.dir)
	}
	s.open()
	return nil
}

func (s *DiskvStore) Close() error {
	return nil
}

func (s *DiskvStore) Get(key string) ([]byte, error) {
	if s.kv == nil {
		return nil, ErrNotLoaded
	}
	data, err := s.kv.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *DiskvStore) Put(key string, value []byte) error {
	if s.kv == nil {
		return ErrNotLoaded
	}
	if err := s.kv.Write(key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *DiskvStore) Delete(key string) error {
	if s.kv == nil {
		return ErrNotLoaded
	}
	if !s.kv.Has(key) {
		return nil
	}
	if err := s.kv.Erase(key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *DiskvStore) Keys() ([]string, error) {
	if s.kv == nil {
		return nil, ErrNotLoaded
	}
	var keys []string
	for k := range s.kv.Keys(nil) {
		// hidden files are not documents
		if strings.HasPrefix(k, ".") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *DiskvStore) GetConfigPath() string {
	return s.dir
}
