// Package store persists whole collections as JSON files on disk.
// Each collection is one file holding a JSON array; every write
// rewrites the file in full through a temp file and a rename, so a
// crash mid-write never leaves a half-written collection behind.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

type Collection[T any] struct {
	path string
	log  logrus.FieldLogger

	mu    sync.Mutex
	items []T
}

// Open loads the collection at path. A missing file or unreadable
// content yields an empty collection: the error is logged, never
// returned, so a corrupted file cannot take the whole service down.
func Open[T any](path string, log logrus.FieldLogger) (*Collection[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	c := &Collection[T]{path: path, log: log}

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithField("path", path).Warnf("unreadable collection file, starting empty: %v", err)
		}
		return c, nil
	}

	if err := json.Unmarshal(b, &c.items); err != nil {
		log.WithField("path", path).Warnf("corrupt collection file, starting empty: %v", err)
		c.items = nil
	}

	return c, nil
}

// Load returns a copy of the collection as last loaded or replaced.
func (c *Collection[T]) Load() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Replace overwrites the whole collection on disk and in memory.
func (c *Collection[T]) Replace(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing collection file: %w", err)
	}

	c.items = make([]T, len(items))
	copy(c.items, items)
	return nil
}
