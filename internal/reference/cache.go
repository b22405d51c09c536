package reference

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// pathLocks serializes the read, compare and write steps on each cache file.
var pathLocks sync.Map // map[string]*sync.Mutex

func lockPath(path string) func() {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	v, _ := pathLocks.LoadOrStore(abs, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// readCache returns the cache file contents, or ok=false if it does not
// exist.
func readCache(path string) (data []byte, ok bool, err error) {
	data, err = os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &CacheError{Path: path, Message: "failed to read cache", Cause: err}
	}
	return data, true, nil
}

// sameContent reports whether data hashes the same as the current cache
// file.
func sameContent(cached []byte, exists bool, data []byte) bool {
	if !exists {
		return false
	}
	a := sha256.Sum256(cached)
	b := sha256.Sum256(data)
	return bytes.Equal(a[:], b[:])
}

// writeCache replaces the cache file atomically: tmp then rename.
func writeCache(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &CacheError{Path: path, Message: "failed to create cache directory", Cause: err}
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return &CacheError{Path: path, Message: "failed to create temp file", Cause: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &CacheError{Path: path, Message: "failed to write temp file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &CacheError{Path: path, Message: "failed to close temp file", Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &CacheError{Path: path, Message: "failed to replace cache", Cause: err}
	}
	return nil
}
