// Package local stores uploads on the local filesystem. The HTTP router
// serves the directory under /uploads/.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/storage"
)

// Storage implements storage.Storage on a local directory.
type Storage struct {
	dir     string
	baseURL string
}

// New creates a local storage rooted at dir. Files are addressed as
// baseURL/<key>.
func New(dir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir returns the directory files are written to.
func (s *Storage) Dir() string {
	return s.dir
}

// Upload writes the file to disk under the given key.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	path, err := s.safePath(input.Key)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, input.Data); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &storage.UploadResult{
		Key: input.Key,
		URL: s.baseURL + "/" + input.Key,
	}, nil
}

// Delete removes the file for the given key. Missing files are not an error.
func (s *Storage) Delete(_ context.Context, key string) error {
	path, err := s.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// safePath resolves a key inside the upload directory and rejects keys that
// would escape it.
func (s *Storage) safePath(key string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return "", fmt.Errorf("resolve upload dir: %w", err)
	}
	if !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid key: %s", key)
	}
	return abs, nil
}
