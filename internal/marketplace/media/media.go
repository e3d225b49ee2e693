// Package media stores uploaded images, videos and documents. The backend
// is chosen once at startup; handlers only see Storage.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/estate/pkg/idx"
	"github.com/dustin/go-humanize"
)

// MaxFileSize bounds a single upload.
const MaxFileSize = 50 << 20

var (
	ErrDisabled    = errors.New("media: uploads are disabled")
	ErrUnsupported = errors.New("media: unsupported file type")
	ErrTooLarge    = fmt.Errorf("media: file exceeds %s", humanize.IBytes(MaxFileSize))
)

var (
	imageExts = []string{".jpeg", ".jpg", ".png", ".webp"}
	videoExts = []string{".mp4", ".mov", ".mkv", ".avi"}
)

// File is one upload on its way to storage.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Ext is the lowercased extension of the original filename.
func (f File) Ext() string { return strings.ToLower(filepath.Ext(f.Filename)) }

func (f File) IsVideo() bool { return slices.Contains(videoExts, f.Ext()) }

// Validate enforces the extension allow-list and the size limit.
func Validate(f File) error {
	ext := f.Ext()
	if !slices.Contains(imageExts, ext) && !slices.Contains(videoExts, ext) {
		return fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if f.Size > MaxFileSize {
		return fmt.Errorf("%w (got %s)", ErrTooLarge, humanize.IBytes(uint64(f.Size)))
	}
	return nil
}

// ObjectName builds a collision-free name that keeps upload order
// visible: <unix ms>-<ulid><ext>.
func ObjectName(now time.Time, ext string) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + strings.ToLower(idx.NewAt(now).String()) + ext
}

// Storage persists a file and returns the URL clients should use. URLs
// may be relative (disk) or absolute (object store).
type Storage interface {
	Store(ctx context.Context, f File) (string, error)
	Name() string
}

// Disabled rejects every upload, for read-only or serverless deployments.
type Disabled struct{}

func (Disabled) Store(context.Context, File) (string, error) { return "", ErrDisabled }
func (Disabled) Name() string                                { return "disabled" }
