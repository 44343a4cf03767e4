package store

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ayush/employee-admin/internal/apperr"
)

// DiskStore keeps employee images as files in a single directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir when it does not exist yet.
func NewDiskStore(dir string) (*DiskStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve upload dir %s", dir)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, errors.Wrapf(err, "mkdir %s", abs)
	}
	return &DiskStore{dir: abs}, nil
}

// Dir is the absolute directory files are written to.
func (s *DiskStore) Dir() string { return s.dir }

// Put writes r to name. A partially written file is removed on failure.
func (s *DiskStore) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	path := s.path(name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return errors.Wrapf(err, "create %s", name)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrapf(err, "write %s", name)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return errors.Wrapf(err, "close %s", name)
	}
	return nil
}

func (s *DiskStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if os.IsNotExist(err) {
		return nil, apperr.Wrap(err, apperr.NotFound, "Image not found")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	return f, nil
}

func (s *DiskStore) Remove(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return apperr.Wrap(err, apperr.NotFound, "Image not found")
	}
	return errors.Wrapf(err, "remove %s", name)
}

// path confines name to the store directory.
func (s *DiskStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
