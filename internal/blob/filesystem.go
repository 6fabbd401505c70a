package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// filesystemStore keeps blobs as regular files under a root directory.
type filesystemStore struct {
	root string
}

// NewFilesystem creates a filesystem-backed store rooted at dir.
func NewFilesystem(dir string) (Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("blob: filesystem root is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create root %s: %w", dir, err)
	}
	return &filesystemStore{root: dir}, nil
}

func (s *filesystemStore) Driver() Driver { return DriverFilesystem }

func (s *filesystemStore) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *filesystemStore) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	if err := validateKey(key); err != nil {
		return Info{}, err
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Info{}, fmt.Errorf("blob: create dir for %s: %w", key, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Info{}, ErrExists
		}
		return Info{}, fmt.Errorf("blob: create %s: %w", key, err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return Info{}, fmt.Errorf("blob: write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return Info{}, fmt.Errorf("blob: close %s: %w", key, err)
	}

	return Info{Key: key, Size: n, ContentType: opts.ContentType}, nil
}

func (s *filesystemStore) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return Info{}, nil, err
	}

	path := s.path(key)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, nil, ErrNotFound
		}
		return Info{}, nil, fmt.Errorf("blob: open %s: %w", key, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return Info{}, nil, fmt.Errorf("blob: stat %s: %w", key, err)
	}

	return Info{Key: key, Size: stat.Size()}, f, nil
}

func (s *filesystemStore) Delete(_ context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	err := os.Remove(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("blob: remove %s: %w", key, err)
	}
	return true, nil
}
