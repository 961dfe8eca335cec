package validation

import (
	"strings"
	"testing"

	apperrors "github.com/glamlens/glamlens/internal/errors"
)

func TestImageValidator_ValidateSize(t *testing.T) {
	v := NewImageValidator(ImageLimits{MaxBytes: 1024})

	if err := v.ValidateSize(512); err != nil {
		t.Errorf("Expected 512 bytes to pass, got %v", err)
	}

	err := v.ValidateSize(0)
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("Expected validation error for empty image, got %v", err)
	}
	if !strings.Contains(err.Error(), "please select an image to analyze") {
		t.Errorf("Unexpected empty-image message: %v", err)
	}

	err = v.ValidateSize(2048)
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("Expected validation error for oversized image, got %v", err)
	}

	unlimited := NewImageValidator(ImageLimits{})
	if err := unlimited.ValidateSize(1 << 40); err != nil {
		t.Errorf("Expected no limit with zero MaxBytes, got %v", err)
	}
}

func TestImageValidator_ValidateDimensions(t *testing.T) {
	v := NewImageValidator(ImageLimits{MaxPixels: 100 * 100})

	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"single pixel", 1, 1, false},
		{"at limit", 100, 100, false},
		{"over limit", 101, 100, true},
		{"zero width", 0, 10, true},
		{"negative height", 10, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDimensions(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
		})
	}
}
