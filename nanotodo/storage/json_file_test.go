package storage

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func newMockedJSONFile(t *testing.T) (*JSONFile, *MockFileSystem, *MockFileLockFactory) {
	t.Helper()
	fs := NewMockFileSystem()
	locks := NewMockFileLockFactory()
	clock := func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	s := NewJSONFile("todos.json",
		WithFileSystem(fs),
		WithFileLockFactory(locks),
		WithClock(clock),
	)
	return s, fs, locks
}

func TestJSONFileWithMockFS(t *testing.T) {
	t.Run("file is created on first write", func(t *testing.T) {
		s, fs, _ := newMockedJSONFile(t)

		if fs.FileExists("todos.json") {
			t.Fatal("expected no file before first write")
		}
		if err := s.SetItem(TodosKey, "[]"); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}

		raw, ok := fs.Content("todos.json")
		if !ok {
			t.Fatal("expected file after write")
		}
		if fs.FileExists("todos.json.tmp") {
			t.Error("temp file left behind")
		}

		var data FileData
		if err := json.Unmarshal(raw, &data); err != nil {
			t.Fatalf("stored file is not JSON: %v", err)
		}
		if data.Items[TodosKey] != "[]" {
			t.Errorf("unexpected items %v", data.Items)
		}
		if data.Metadata.Version != FileFormatVersion {
			t.Errorf("expected version %s, got %s", FileFormatVersion, data.Metadata.Version)
		}
		if !data.Metadata.UpdatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
			t.Errorf("expected clock timestamp, got %v", data.Metadata.UpdatedAt)
		}
	})

	t.Run("unchanged values skip the write", func(t *testing.T) {
		s, fs, _ := newMockedJSONFile(t)

		_ = s.SetItem(TodosKey, "same")
		_ = s.SetItem(TodosKey, "same")
		_ = s.RemoveItem("never-set")

		if fs.Writes != 1 {
			t.Errorf("expected 1 write, got %d", fs.Writes)
		}
	})

	t.Run("lock is released after every call", func(t *testing.T) {
		s, _, locks := newMockedJSONFile(t)

		_ = s.SetItem(TodosKey, "x")
		_, _, _ = s.GetItem(TodosKey)

		lock := locks.Lock("todos.json.lock")
		if lock.IsLocked() {
			t.Error("expected lock to be released")
		}
		if lock.LockAttempts != 2 || lock.UnlockAttempts != 2 {
			t.Errorf("expected 2 lock/unlock pairs, got %d/%d", lock.LockAttempts, lock.UnlockAttempts)
		}
	})

	t.Run("read errors surface", func(t *testing.T) {
		s, fs, _ := newMockedJSONFile(t)
		fs.SetContent("todos.json", []byte(`{"items":{}}`))
		fs.ReadFileError = errors.New("disk read error")

		_, _, err := s.GetItem(TodosKey)
		if !errors.Is(err, fs.ReadFileError) {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("corrupt file surfaces a parse error", func(t *testing.T) {
		s, fs, _ := newMockedJSONFile(t)
		fs.SetContent("todos.json", []byte(`{not json`))

		if _, _, err := s.GetItem(TodosKey); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("empty file reads as empty storage", func(t *testing.T) {
		s, fs, _ := newMockedJSONFile(t)
		fs.SetContent("todos.json", nil)

		_, ok, err := s.GetItem(TodosKey)
		if err != nil || ok {
			t.Errorf("expected absent key, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("failed rename cleans up the temp file", func(t *testing.T) {
		s, fs, _ := newMockedJSONFile(t)
		fs.RenameError = errors.New("rename failed")

		err := s.SetItem(TodosKey, "x")
		if !errors.Is(err, fs.RenameError) {
			t.Fatalf("expected rename error, got %v", err)
		}
		if fs.FileExists("todos.json.tmp") {
			t.Error("temp file should be removed after failed rename")
		}
	})

	t.Run("busy lock times out", func(t *testing.T) {
		s, _, locks := newMockedJSONFile(t)
		locks.Lock("todos.json.lock").Busy = true

		if err := s.SetItem(TodosKey, "x"); err == nil {
			t.Error("expected lock acquisition failure")
		}
		if got := locks.Lock("todos.json.lock").LockAttempts; got != lockMaxRetries {
			t.Errorf("expected %d attempts, got %d", lockMaxRetries, got)
		}
	})

	t.Run("lock errors surface", func(t *testing.T) {
		s, _, locks := newMockedJSONFile(t)
		locks.Lock("todos.json.lock").LockError = errors.New("flock broken")

		if _, _, err := s.GetItem(TodosKey); err == nil {
			t.Error("expected lock error")
		}
	})
}
