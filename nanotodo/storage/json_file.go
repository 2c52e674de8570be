package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// FileData is the on-disk layout of a JSONFile.
type FileData struct {
	Items    map[string]string `json:"items"`
	Metadata Metadata          `json:"metadata"`
}

// Metadata describes the storage file itself, not the todo payload.
type Metadata struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileFormatVersion is written into new storage files.
const FileFormatVersion = "1.0"

// Lock tuning for the cross-process file lock.
const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// JSONFile stores all items in a single JSON file.
// Every call re-reads the file under a cross-process lock so several
// processes can share one store; writes go to a temp file and are renamed
// into place.
type JSONFile struct {
	filePath    string
	lockManager *LockManager
	fs          FileSystem
	lockFactory FileLockFactory
	fileLock    FileLock
	timeFunc    func() time.Time
}

// JSONFileOption customizes a JSONFile.
type JSONFileOption func(*JSONFile)

// WithFileSystem replaces the OS file system, mostly for tests.
func WithFileSystem(fs FileSystem) JSONFileOption {
	return func(s *JSONFile) {
		s.fs = fs
	}
}

// WithFileLockFactory replaces the flock-based lock factory.
func WithFileLockFactory(factory FileLockFactory) JSONFileOption {
	return func(s *JSONFile) {
		s.lockFactory = factory
	}
}

// WithClock sets the time source used for metadata timestamps.
func WithClock(fn func() time.Time) JSONFileOption {
	return func(s *JSONFile) {
		s.timeFunc = fn
	}
}

// NewJSONFile returns storage backed by filePath.
// The file is created on the first write; a missing file reads as empty.
func NewJSONFile(filePath string, opts ...JSONFileOption) *JSONFile {
	s := &JSONFile{
		filePath:    filePath,
		lockManager: NewLockManager(),
		fs:          OSFileSystem{},
		lockFactory: FlockFactory{},
		timeFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.fileLock = s.lockFactory.New(s.lockPath())
	return s
}

// Path returns the storage file path.
func (s *JSONFile) Path() string {
	return s.filePath
}

func (s *JSONFile) lockPath() string {
	return s.filePath + ".lock"
}

// GetItem implements LocalStorage.
func (s *JSONFile) GetItem(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	// Reads take the exclusive lock too: the file lock handle is shared state.
	err := s.lockManager.Execute(WriteOperation, func() error {
		return s.withFileLock(func() error {
			data, err := s.load()
			if err != nil {
				return err
			}
			value, found = data.Items[key]
			return nil
		})
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

// SetItem implements LocalStorage.
func (s *JSONFile) SetItem(key, value string) error {
	return s.update(func(data *FileData) bool {
		if current, ok := data.Items[key]; ok && current == value {
			return false
		}
		data.Items[key] = value
		return true
	})
}

// RemoveItem implements LocalStorage.
func (s *JSONFile) RemoveItem(key string) error {
	return s.update(func(data *FileData) bool {
		if _, ok := data.Items[key]; !ok {
			return false
		}
		delete(data.Items, key)
		return true
	})
}

// Close removes the lock file. The data file is left in place.
func (s *JSONFile) Close() error {
	if err := s.fs.Remove(s.lockPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// update applies mutate to freshly loaded data and saves when it reports a change.
func (s *JSONFile) update(mutate func(*FileData) bool) error {
	return s.lockManager.Execute(WriteOperation, func() error {
		return s.withFileLock(func() error {
			data, err := s.load()
			if err != nil {
				return err
			}
			if !mutate(data) {
				return nil
			}
			return s.save(data)
		})
	})
}

func (s *JSONFile) withFileLock(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.fileLock.Unlock() }()

	return fn()
}

func (s *JSONFile) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := s.fileLock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}

// load reads the file. Callers hold both locks.
func (s *JSONFile) load() (*FileData, error) {
	now := s.timeFunc()
	empty := &FileData{
		Items:    map[string]string{},
		Metadata: Metadata{Version: FileFormatVersion, CreatedAt: now, UpdatedAt: now},
	}

	if _, err := s.fs.Stat(s.filePath); errors.Is(err, os.ErrNotExist) {
		return empty, nil
	}

	raw, err := s.fs.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(raw) == 0 {
		return empty, nil
	}

	var data FileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if data.Items == nil {
		data.Items = map[string]string{}
	}
	return &data, nil
}

// save writes data atomically. Callers hold both locks.
func (s *JSONFile) save(data *FileData) error {
	data.Metadata.UpdatedAt = s.timeFunc()
	if data.Metadata.Version == "" {
		data.Metadata.Version = FileFormatVersion
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	tmpFile := s.filePath + ".tmp"
	if err := s.fs.WriteFile(tmpFile, raw, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := s.fs.Rename(tmpFile, s.filePath); err != nil {
		_ = s.fs.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
