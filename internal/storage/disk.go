package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStore writes files into a local directory that is also served
// statically under /uploads.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir is the directory files are written to.
func (d *DiskStore) Dir() string {
	return d.dir
}

func (d *DiskStore) Save(ctx context.Context, filename, _ string, body io.Reader, _ int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(d.dir, filepath.Base(filename))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func (d *DiskStore) Delete(_ context.Context, filename string) error {
	err := os.Remove(filepath.Join(d.dir, filepath.Base(filename)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
