package repository

import (
	"context"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/glamlens/glamlens/internal/errors"
	"github.com/glamlens/glamlens/internal/storage"
	"github.com/glamlens/glamlens/pkg/validation"
)

// ImageRepository resolves an image source to a decoded image
type ImageRepository interface {
	// FetchImage retrieves an image from an http(s) URL, an Azure blob URL or,
	// when enabled, a local path
	FetchImage(ctx context.Context, location string) (*storage.DecodedImage, error)

	// DecodeUpload decodes an image sent in a request body
	DecodeUpload(r io.Reader) (*storage.DecodedImage, error)

	// ValidateImageURL validates a remote URL without fetching it
	ValidateImageURL(imageURL string) (validation.SourceKind, error)
}

// Sources groups the fetchers a repository routes to. Azure and Local are optional.
type Sources struct {
	HTTP  storage.ImageFetcher
	Azure storage.ImageFetcher
	Local storage.ImageFetcher
}

type imageRepository struct {
	sources   Sources
	decoder   *storage.Decoder
	validator *validation.URLValidator
}

// NewImageRepository creates a repository. Blob URLs fall back to plain HTTP
// when no Azure fetcher is configured, which serves public containers.
func NewImageRepository(sources Sources, decoder *storage.Decoder, validator *validation.URLValidator) ImageRepository {
	if validator == nil {
		validator = validation.NewURLValidator()
	}
	return &imageRepository{
		sources:   sources,
		decoder:   decoder,
		validator: validator,
	}
}

func (r *imageRepository) FetchImage(ctx context.Context, location string) (*storage.DecodedImage, error) {
	if !isRemote(location) {
		if r.sources.Local == nil {
			return nil, apperrors.NewValidationError("image URL must use http or https", ErrLocalFilesDisabled)
		}
		return r.sources.Local.FetchImage(ctx, location)
	}

	kind, err := r.ValidateImageURL(location)
	if err != nil {
		return nil, err
	}

	fetcher := r.sources.HTTP
	if kind == validation.SourceAzureBlob && r.sources.Azure != nil {
		fetcher = r.sources.Azure
	}
	if fetcher == nil {
		return nil, apperrors.NewInternalError("image source unavailable", fmt.Errorf("%w: %s", ErrNoFetcher, kind))
	}
	return fetcher.FetchImage(ctx, location)
}

func (r *imageRepository) DecodeUpload(body io.Reader) (*storage.DecodedImage, error) {
	return r.decoder.Decode(body)
}

func (r *imageRepository) ValidateImageURL(imageURL string) (validation.SourceKind, error) {
	return r.validator.ValidateImageURL(imageURL)
}

// isRemote treats anything with a URL scheme separator as a URL
func isRemote(location string) bool {
	return strings.Contains(location, "://")
}
