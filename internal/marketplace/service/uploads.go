package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/media"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

var (
	ErrUploadsDisabled = apperr.Validation("File uploads are disabled on this deployment")
	ErrUploadType      = apperr.Validation("Only image and video files are allowed")
	ErrUploadTooLarge  = apperr.Validation("File is too large")
)

// storeFile saves f and returns an absolute URL. Relative URLs from the
// storage backend are resolved against baseURL.
func storeFile(ctx context.Context, st media.Storage, f media.File, baseURL string) (string, error) {
	url, err := st.Store(ctx, f)
	switch {
	case errors.Is(err, media.ErrDisabled):
		return "", ErrUploadsDisabled
	case errors.Is(err, media.ErrUnsupported):
		return "", ErrUploadType
	case errors.Is(err, media.ErrTooLarge):
		return "", apperr.Wrap(ErrUploadTooLarge, err)
	case err != nil:
		slogx.FromContext(ctx).Error("media store failed", "backend", st.Name(), "error", err)
		return "", apperr.Upstream("Failed to store file", err)
	}
	return absoluteURL(baseURL, url), nil
}

func storeFiles(ctx context.Context, st media.Storage, files []media.File, baseURL string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		u, err := storeFile(ctx, st, f, baseURL)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func absoluteURL(base, u string) string {
	if base == "" || !strings.HasPrefix(u, "/") {
		return u
	}
	return strings.TrimSuffix(base, "/") + u
}
