// Package file stores saved games as JSON files in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/cory-johannsen/wildone/internal/game/save"
)

const ext = ".json"

var validSlot = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Store keeps one <slot>.json file per save in dir.
type Store struct {
	dir string
}

var _ save.Store = (*Store)(nil)

// NewStore returns a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(slot string) (string, error) {
	if !validSlot.MatchString(slot) {
		return "", fmt.Errorf("invalid save slot %q", slot)
	}
	return filepath.Join(s.dir, slot+ext), nil
}

// Save writes doc to slot, replacing any previous file atomically.
func (s *Store) Save(_ context.Context, slot string, doc *save.Document) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}
	data, err := save.Encode(doc)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}
	return nil
}

// Load reads the document in slot.
//
// Postcondition: a missing file wraps save.ErrSaveFileNotFound; an undecodable
// one wraps save.ErrCorruptSaveFile.
func (s *Store) Load(_ context.Context, slot string) (*save.Document, error) {
	path, err := s.path(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("slot %q: %w", slot, save.ErrSaveFileNotFound)
		}
		return nil, fmt.Errorf("loading slot %q: %w", slot, err)
	}
	doc, err := save.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("slot %q: %w", slot, err)
	}
	return doc, nil
}

// Delete removes the file for slot.
func (s *Store) Delete(_ context.Context, slot string) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("slot %q: %w", slot, save.ErrSaveFileNotFound)
		}
		return fmt.Errorf("deleting slot %q: %w", slot, err)
	}
	return nil
}

// List returns the slots that have a save file, in ascending order.
func (s *Store) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	var slots []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		slots = append(slots, strings.TrimSuffix(name, ext))
	}
	slices.Sort(slots)
	return slots, nil
}
