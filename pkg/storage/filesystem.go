package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage persists snapshot files on disk under a base directory.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./backups"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save writes the given bytes to the provided relative path under the base dir.
func (s *LocalStorage) Save(filename string, data []byte) (string, error) {
	path := s.resolve(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot file: %w", err)
	}
	return filename, nil
}

// EnsureDir creates a directory under the base dir and returns its absolute path.
func (s *LocalStorage) EnsureDir(name string) (string, error) {
	path := s.resolve(name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}
	return path, nil
}

// DirSize recursively sums the size of all regular files under dir.
func (s *LocalStorage) DirSize(dir string) (int64, error) {
	var size int64
	err := filepath.WalkDir(s.resolve(dir), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			// Entry vanished mid-walk; keep counting the rest.
			return nil
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("measure directory: %w", err)
	}
	return size, nil
}

// ListTree returns all entries under dir relative to it, directories suffixed
// with a slash, in walk order.
func (s *LocalStorage) ListTree(dir string) ([]string, error) {
	root := s.resolve(dir)
	entries := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			rel += "/"
		}
		entries = append(entries, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list directory: %w", err)
	}
	return entries, nil
}

// LatestDir returns the most recently modified directory under the base dir
// whose name carries the given prefix, or an empty string when none exists.
func (s *LocalStorage) LatestDir(prefix string) (string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("scan storage directory: %w", err)
	}

	latest := ""
	var latestMod int64
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = entry.Name()
			latestMod = info.ModTime().UnixNano()
		}
	}
	return latest, nil
}

// Path exposes the underlying absolute path.
func (s *LocalStorage) Path(filename string) string {
	return s.resolve(filename)
}

func (s *LocalStorage) resolve(filename string) string {
	if filename == "" {
		return s.baseDir
	}
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.baseDir, filename)
}
