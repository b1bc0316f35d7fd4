package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pion/logging"
)

// FileStoreConfig configures a FileStore.
type FileStoreConfig struct {
	// Dir is the directory holding one file per key. Created if missing.
	// Required.
	Dir string

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// FileStore persists each key as a file in a directory. Keys are
// path-escaped so that hierarchical names such as "g/bt/3" map to a single
// file. Writes go to a temporary file that is synced and renamed over the
// target, so a reader never observes a partially written value.
//
// All methods are safe for concurrent use.
type FileStore struct {
	mu  sync.Mutex
	dir string
	log logging.LeveledLogger
}

// tempPrefix can never be produced by url.PathEscape, so temporary files
// are distinguishable from escaped keys.
const tempPrefix = "%%tmp-"

// NewFileStore opens (and if necessary creates) a file-backed store.
func NewFileStore(config FileStoreConfig) (*FileStore, error) {
	if config.Dir == "" {
		return nil, errors.New("storage: directory is required")
	}
	if err := os.MkdirAll(config.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", config.Dir, err)
	}

	f := &FileStore{dir: config.Dir}
	if config.LoggerFactory != nil {
		f.log = config.LoggerFactory.NewLogger("storage")
	}
	return f, nil
}

// Dir returns the backing directory.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key))
}

func validFileKey(key string) error {
	if key == "." || key == ".." {
		return ErrInvalidKey
	}
	return validKey(key)
}

// Get reads the value stored under key.
func (f *FileStore) Get(key string) ([]byte, error) {
	if err := validFileKey(key); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", key, err)
	}
	return data, nil
}

// Set atomically replaces the value stored under key.
func (f *FileStore) Set(key string, value []byte) error {
	if err := validFileKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	target := f.path(key)
	tmp, err := os.CreateTemp(f.dir, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(value)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, target)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: write %q: %w", key, err)
	}

	if f.log != nil {
		f.log.Tracef("set %q (%d bytes)", key, len(value))
	}
	return nil
}

// Delete removes key. A missing file is not an error.
func (f *FileStore) Delete(key string) error {
	if err := validFileKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}

	if f.log != nil {
		f.log.Tracef("delete %q", key)
	}
	return nil
}

// Keys lists stored keys with the given prefix in ascending order.
// Leftover temporary files are ignored.
func (f *FileStore) Keys(prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dirents, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", f.dir, err)
	}

	var keys []string
	for _, d := range dirents {
		if d.IsDir() || strings.HasPrefix(d.Name(), tempPrefix) {
			continue
		}
		key, err := url.PathUnescape(d.Name())
		if err != nil {
			if f.log != nil {
				f.log.Warnf("ignoring unexpected file %q in %s", d.Name(), f.dir)
			}
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

var (
	_ Store  = (*FileStore)(nil)
	_ Lister = (*FileStore)(nil)
)
