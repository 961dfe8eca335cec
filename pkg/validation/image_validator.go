package validation

import (
	"fmt"

	apperrors "github.com/glamlens/glamlens/internal/errors"
)

// ImageLimits bounds what a decoded photo may cost
type ImageLimits struct {
	MaxBytes  int64
	MaxPixels int64
}

// ImageValidator rejects images before the full decode when their header
// already shows they are out of bounds
type ImageValidator struct {
	limits ImageLimits
}

// NewImageValidator creates a validator; zero limits disable the check
func NewImageValidator(limits ImageLimits) *ImageValidator {
	return &ImageValidator{limits: limits}
}

// ValidateSize checks the encoded size of an image
func (v *ImageValidator) ValidateSize(n int64) error {
	if n == 0 {
		return apperrors.NewValidationError("please select an image to analyze", nil)
	}
	if v.limits.MaxBytes > 0 && n > v.limits.MaxBytes {
		return apperrors.NewValidationError("image is too large", nil).
			WithDetails(fmt.Sprintf("%d bytes exceeds the %d byte limit", n, v.limits.MaxBytes))
	}
	return nil
}

// ValidateDimensions checks the pixel dimensions reported by the image header
func (v *ImageValidator) ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return apperrors.NewValidationError("image has no pixels", nil).
			WithDetails(fmt.Sprintf("%dx%d", width, height))
	}
	if v.limits.MaxPixels > 0 && int64(width)*int64(height) > v.limits.MaxPixels {
		return apperrors.NewValidationError("image resolution is too large", nil).
			WithDetails(fmt.Sprintf("%dx%d exceeds the %d pixel limit", width, height, v.limits.MaxPixels))
	}
	return nil
}
