package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// DiskStore keeps uploaded files on the local filesystem under a single
// root directory. Names are relative slash paths; writing an existing name
// replaces its content.
type DiskStore struct {
	root string
}

var ErrInvalidName = errors.New("invalid file name")

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{root: root}, nil
}

// Root returns the directory backing the store, for serving files over HTTP.
func (s *DiskStore) Root() string {
	return s.root
}

func (s *DiskStore) path(name string) (string, error) {
	if name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.root, filepath.FromSlash(name)), nil
}

func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader) error {
	dst, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *DiskStore) Remove(ctx context.Context, name string) error {
	dst, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(dst)
}

// Open reads back a stored file. Callers own the returned ReadCloser.
func (s *DiskStore) Open(name string) (io.ReadCloser, error) {
	src, err := s.path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(src)
}
