package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/daybook/internal/logger"
)

// Strategy decides how a repository's in-memory collection reaches the store.
type Strategy interface {
	Flush(p Provider, key string, items any) error
}

// FullRewrite serializes the entire collection and replaces the stored
// document on every flush.
type FullRewrite struct{}

func (FullRewrite) Flush(p Provider, key string, items any) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := p.Put(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// LoadCollection reads the document stored under key as a JSON array. A
// missing or corrupt document yields an empty collection, and elements that
// fail to decode are dropped while the rest load. Only store I/O failures are
// returned as errors.
func LoadCollection[T any](p Provider, key string) ([]T, error) {
	data, err := p.Get(key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("Discarding unreadable document", "key", key, "error", err)
		return []T{}, nil
	}

	items := make([]T, 0, len(raw))
	for i, elem := range raw {
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			logger.Warn("Skipping unreadable record", "key", key, "index", i, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
