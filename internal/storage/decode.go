package storage

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	apperrors "github.com/glamlens/glamlens/internal/errors"
	"github.com/glamlens/glamlens/pkg/validation"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodedImage is a raster plus what is known about its encoding
type DecodedImage struct {
	Image  image.Image
	Format string
	Bytes  int64
}

// ImageFetcher loads and decodes an image from a location
type ImageFetcher interface {
	FetchImage(ctx context.Context, location string) (*DecodedImage, error)
}

// Decoder turns encoded bytes into an image, enforcing size limits
type Decoder struct {
	validator *validation.ImageValidator
	maxBytes  int64
}

// NewDecoder creates a decoder; zero limits disable the checks
func NewDecoder(limits validation.ImageLimits) *Decoder {
	return &Decoder{
		validator: validation.NewImageValidator(limits),
		maxBytes:  limits.MaxBytes,
	}
}

// Decode reads r fully and decodes it. Oversized input is a validation
// error; unreadable or unsupported data is a decode error.
func (d *Decoder) Decode(r io.Reader) (*DecodedImage, error) {
	if d.maxBytes > 0 {
		r = io.LimitReader(r, d.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read image data", err)
	}
	return d.DecodeBytes(data)
}

// DecodeBytes decodes an in-memory image
func (d *Decoder) DecodeBytes(data []byte) (*DecodedImage, error) {
	if err := d.validator.ValidateSize(int64(len(data))); err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError("unsupported or corrupt image", err)
	}
	if err := d.validator.ValidateDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError("failed to decode image", err)
	}

	return &DecodedImage{
		Image:  img,
		Format: format,
		Bytes:  int64(len(data)),
	}, nil
}
