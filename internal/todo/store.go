package todo

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/em-s-h/tsk/internal/logging"
	"github.com/em-s-h/tsk/internal/tasktree"
)

// Store reads and writes one task file.
type Store struct {
	Path   string
	Format Format // empty means detect from Path
	// Lock takes an advisory lock on Path+".lock" during Update.
	Lock bool
	// Validate checks the file against the schema on every load.
	Validate   bool
	SchemaPath string
	Logger     *log.Logger
}

// NewStore returns a store for path with the format taken from its extension.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) format() Format {
	return DetectFormat(s.Path, s.Format)
}

func (s *Store) logger() *log.Logger {
	if s.Logger == nil {
		return logging.Discard()
	}
	return s.Logger
}

// Load reads the task file. A missing or blank file yields the placeholder
// tree.
func (s *Store) Load() (*tasktree.Tree, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger().Debug("task file missing, using placeholder", "path", s.Path)
			return tasktree.Placeholder(), nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.logger().Debug("task file empty, using placeholder", "path", s.Path)
		return tasktree.Placeholder(), nil
	}

	format := s.format()
	if s.Validate && format == FormatJSON {
		if err := s.check(data); err != nil {
			return nil, err
		}
	}

	tree, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse task file %s: %w", s.Path, err)
	}

	if s.Validate && format != FormatJSON {
		encoded, err := tree.Serialize()
		if err != nil {
			return nil, err
		}
		if err := s.check(encoded); err != nil {
			return nil, err
		}
	}

	total, done := tree.Stats()
	s.logger().Debug("loaded task file", "path", s.Path, "format", format, "tasks", total, "done", done)
	return tree, nil
}

func (s *Store) check(data []byte) error {
	result := Validate(data, ValidationOptions{SchemaPath: s.SchemaPath})
	for _, w := range result.Warnings {
		s.logger().Warn(w, "path", s.Path)
	}
	if result.Valid {
		return nil
	}
	return fmt.Errorf("task file %s failed validation: %w", s.Path, errors.Join(result.Errors...))
}

// Save writes tree to the task file, creating its directory if needed.
func (s *Store) Save(tree *tasktree.Tree) error {
	format := s.format()
	data, err := Encode(tree, format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create task file directory: %w", err)
		}
	}
	if err := writeFileAtomic(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}

	s.logger().Debug("saved task file", "path", s.Path, "format", format, "bytes", len(data))
	return nil
}

// Update loads the tree, applies fn, and saves the result. Nothing is written
// when fn fails. The returned tree is the one that was saved.
func (s *Store) Update(fn func(*tasktree.Tree) error) (*tasktree.Tree, error) {
	if s.Lock {
		unlock, err := s.lock()
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	tree, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := fn(tree); err != nil {
		return nil, err
	}
	if err := s.Save(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// LockPath is the file the advisory lock is taken on.
func (s *Store) LockPath() string {
	return s.Path + ".lock"
}

func (s *Store) lock() (func(), error) {
	if dir := filepath.Dir(s.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create task file directory: %w", err)
		}
	}

	flk := flock.New(s.LockPath())
	locked, err := flk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", s.LockPath(), err)
	}
	if !locked {
		s.logger().Info("waiting for task file lock", "path", s.LockPath())
		if err := flk.Lock(); err != nil {
			return nil, fmt.Errorf("lock %s: %w", s.LockPath(), err)
		}
	}
	return func() { _ = flk.Unlock() }, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
