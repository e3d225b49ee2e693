package media_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/media"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file media.File
		err  error
	}{
		{"png", media.File{Filename: "a.PNG", Size: 10}, nil},
		{"mkv", media.File{Filename: "tour.mkv", Size: media.MaxFileSize}, nil},
		{"pdf", media.File{Filename: "deed.pdf", Size: 10}, media.ErrUnsupported},
		{"no ext", media.File{Filename: "photo", Size: 10}, media.ErrUnsupported},
		{"too big", media.File{Filename: "a.jpg", Size: media.MaxFileSize + 1}, media.ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := media.Validate(tt.file)
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTooLargeMessageIsReadable(t *testing.T) {
	t.Parallel()
	require.Contains(t, media.ErrTooLarge.Error(), "50 MiB")
}

func TestObjectName(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000123)
	name := media.ObjectName(now, ".jpg")
	require.True(t, strings.HasPrefix(name, "1700000000123-"), name)
	require.True(t, strings.HasSuffix(name, ".jpg"), name)
	require.NotEqual(t, name, media.ObjectName(now, ".jpg"))
}

func TestDiskStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	d, err := media.NewDisk(dir)
	require.NoError(t, err)

	url, err := d.Store(context.Background(), media.File{
		Filename: "front.webp",
		Size:     5,
		Body:     strings.NewReader("hello"),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"), url)

	b, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	require.Equal(t, "hello", string(b))

	_, err = d.Store(context.Background(), media.File{Filename: "x.exe", Size: 1, Body: strings.NewReader("x")})
	require.ErrorIs(t, err, media.ErrUnsupported)
}

func TestDisabled(t *testing.T) {
	t.Parallel()

	_, err := media.Disabled{}.Store(context.Background(), media.File{Filename: "a.png"})
	require.ErrorIs(t, err, media.ErrDisabled)
}
