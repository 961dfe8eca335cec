package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"

	apperrors "github.com/glamlens/glamlens/internal/errors"
)

// LocalImageFetcher reads images from the local file system
type LocalImageFetcher struct {
	decoder *Decoder
}

// NewLocalImageFetcher creates a file system fetcher
func NewLocalImageFetcher(decoder *Decoder) *LocalImageFetcher {
	return &LocalImageFetcher{decoder: decoder}
}

// FetchImage opens and decodes the file at path
func (l *LocalImageFetcher) FetchImage(ctx context.Context, path string) (*DecodedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError("file read cancelled", err)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("image file not found", err)
		}
		return nil, apperrors.NewValidationError("cannot open image file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, apperrors.NewInternalError("cannot stat image file", err)
	}
	if info.IsDir() {
		return nil, apperrors.NewValidationError("path is a directory", nil).WithDetails(path)
	}

	return l.decoder.Decode(f)
}
