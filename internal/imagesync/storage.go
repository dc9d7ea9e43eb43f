// Package imagesync mirrors remote catalog images onto local disk and
// rewrites the catalog to point at the local copies.
package imagesync

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/scentdex/scentdex-server/internal/util"
)

// FileName is the local file name for record index with display name.
// Format: {index}-{slug}.jpg. The extension is fixed regardless of the source format.
func FileName(index int, name string) string {
	return strconv.Itoa(index) + "-" + util.FileSlug(name) + ".jpg"
}

// Storage manages the downloaded image directory.
// Safe for concurrent use.
type Storage struct {
	dir string
	mu  sync.RWMutex
}

// NewStorage opens dir, creating it when missing.
func NewStorage(dir string) (*Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("image directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the storage directory.
func (s *Storage) Dir() string {
	return s.dir
}

// Path returns the full filesystem path for a file name.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Exists reports whether name is already on disk.
func (s *Storage) Exists(name string) bool {
	if name == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Save writes data to name through a temp file and rename, so a reader
// never sees a partial image.
func (s *Storage) Save(name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if len(data) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write image file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close image file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod image file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path(name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename image file: %w", err)
	}
	return nil
}

// Read returns the stored bytes of name.
func (s *Storage) Read(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", name, err)
	}
	return data, nil
}

// Hash returns the hex SHA-256 of name's contents.
func (s *Storage) Hash(name string) (string, error) {
	data, err := s.Read(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}
