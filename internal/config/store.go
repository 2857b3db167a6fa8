package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Store owns the managed configuration file. It is the only component that
// touches the filesystem; callers load the document fresh for each operation
// and write back a complete replacement, so the on-disk file is always valid
// JSON and never reflects a partially applied batch.
type Store struct {
	mu            sync.Mutex
	path          string
	logger        *zap.Logger
	skipNextEvent bool
}

// NewStore creates a store for the managed file at path. The path is
// cleaned so the watcher can compare it against fsnotify event names.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: filepath.Clean(path), logger: logger}
}

// Path returns the managed file path.
func (s *Store) Path() string { return s.path }

// Load reads and parses the managed file. An absent file is the bootstrap
// case and yields an empty document.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("config file absent, starting empty", zap.String("path", s.path))
			return NewDocument(), nil
		}
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	doc.normalize()
	return &doc, nil
}

// Save serializes the document and replaces the managed file via a temp file
// and atomic rename, so a reader never observes a half-written file and the
// previous content survives an interrupted save.
func (s *Store) Save(doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	doc.normalize()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config document: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return &IOError{Op: "write", Path: tempPath, Err: err}
	}

	s.markOwnWrite()
	if err := os.Rename(tempPath, s.path); err != nil {
		s.clearOwnWrite()
		_ = os.Remove(tempPath)
		return &IOError{Op: "write", Path: s.path, Err: err}
	}

	s.logger.Debug("config file saved",
		zap.String("path", s.path),
		zap.Int("active", len(doc.Active)),
		zap.Int("inactive", len(doc.Inactive)))
	return nil
}

func (s *Store) markOwnWrite() {
	s.mu.Lock()
	s.skipNextEvent = true
	s.mu.Unlock()
}

func (s *Store) clearOwnWrite() {
	s.mu.Lock()
	s.skipNextEvent = false
	s.mu.Unlock()
}

// ConsumeOwnWrite reports whether the most recent file event came from this
// process and resets the flag. Called by the watcher so programmatic saves
// are not logged as external edits.
func (s *Store) ConsumeOwnWrite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.skipNextEvent {
		s.skipNextEvent = false
		return true
	}
	return false
}
