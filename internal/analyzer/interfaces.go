package analyzer

import (
	"errors"
	"image"

	"github.com/glamlens/glamlens/pkg/models"
)

var (
	// ErrNoSkinDetected is returned when no sampled pixel passes the skin filter
	ErrNoSkinDetected = errors.New("could not detect skin tone in the sampled region; please try a clearer, centered photo")
	// ErrEmptyImage is returned for images without pixels
	ErrEmptyImage = errors.New("image has no pixels")
	// ErrInvalidOptions wraps option validation failures
	ErrInvalidOptions = errors.New("invalid analysis options")
)

// ToneAnalyzer defines the main interface for skin tone analysis
type ToneAnalyzer interface {
	Analyze(img image.Image, options AnalysisOptions) (*models.AnalysisResult, error)
}

// RecommendationSource resolves a tone key to its bundle. found is false when
// the returned bundle is the default.
type RecommendationSource interface {
	Lookup(tone string) (bundle models.Recommendations, found bool)
}

// PaletteExtractor finds the prominent colours of an image region
type PaletteExtractor interface {
	Extract(img image.Image, rect image.Rectangle, k int) ([]models.PaletteColor, error)
}
