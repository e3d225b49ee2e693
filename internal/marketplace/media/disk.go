package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Disk writes uploads under Dir and serves them from URLPrefix.
type Disk struct {
	Dir       string
	URLPrefix string
	now       func() time.Time
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{Dir: dir, URLPrefix: "/uploads/", now: time.Now}, nil
}

func (d *Disk) Name() string { return "local" }

func (d *Disk) Store(ctx context.Context, f File) (string, error) {
	if err := Validate(f); err != nil {
		return "", err
	}

	name := ObjectName(d.now(), f.Ext())
	path := filepath.Join(d.Dir, name)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}

	n, err := io.Copy(out, io.LimitReader(f.Body, MaxFileSize+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxFileSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return d.URLPrefix + name, nil
}
