package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/harunnryd/notedesk/internal/errors"

	"github.com/natefinch/atomic"
)

const storageFileName = "storage.json"

// File is a KV backed by a single JSON object on disk. The whole map is
// rewritten atomically on every mutation and the profile directory is
// held under a FileLock for the lifetime of the store.
type File struct {
	profile string
	path    string
	lock    *FileLock

	mu   sync.RWMutex
	data map[string]string
}

func OpenFile(profile, profileRoot string, lockCfg *FileLockConfig) (*File, error) {
	basePath, err := GetProfilePath(profile, profileRoot)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, errors.Storage(fmt.Sprintf("create profile dir %s", basePath), err)
	}

	lock, err := NewFileLock(profile, basePath, lockCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	f := &File{
		profile: profile,
		path:    filepath.Join(basePath, storageFileName),
		lock:    lock,
		data:    make(map[string]string),
	}
	f.load()
	return f, nil
}

func (f *File) load() {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read storage file, starting empty", "path", f.path, "error", err)
		}
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		slog.Warn("Failed to parse storage file, starting empty", "path", f.path, "error", err)
		f.data = make(map[string]string)
	}
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if prev, ok := f.data[key]; ok && prev == value {
		return nil
	}
	f.data[key] = value
	return f.flushLocked()
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.flushLocked()
}

func (f *File) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *File) flushLocked() error {
	data, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return errors.Storage("encode storage", err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return errors.Storage(fmt.Sprintf("write %s", f.path), err)
	}
	return nil
}

// Close releases the profile lock. The store must not be used afterwards.
func (f *File) Close() error {
	if f.lock != nil {
		f.lock.Unlock()
		f.lock = nil
	}
	slog.Debug("Storage closed", "profile", f.profile)
	return nil
}
