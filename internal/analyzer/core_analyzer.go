package analyzer

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/glamlens/glamlens/internal/logger"
	"github.com/glamlens/glamlens/internal/strategy"
	"github.com/glamlens/glamlens/pkg/models"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// coreAnalyzer implements ToneAnalyzer. It holds no per-call state and is
// safe for concurrent use.
type coreAnalyzer struct {
	recommendations RecommendationSource
	palette         PaletteExtractor
	now             func() time.Time
}

// Option customises a ToneAnalyzer
type Option func(*coreAnalyzer)

// WithPaletteExtractor replaces the k-means palette extractor
func WithPaletteExtractor(p PaletteExtractor) Option {
	return func(ca *coreAnalyzer) {
		ca.palette = p
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(ca *coreAnalyzer) {
		ca.now = now
	}
}

// NewToneAnalyzer creates an analyzer backed by the given recommendation source
func NewToneAnalyzer(recommendations RecommendationSource, opts ...Option) (ToneAnalyzer, error) {
	if recommendations == nil {
		return nil, errors.New("recommendation source is required")
	}
	ca := &coreAnalyzer{
		recommendations: recommendations,
		palette:         NewPaletteExtractor(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(ca)
	}
	return ca, nil
}

// Analyze samples the strategy window, averages the skin-like pixels and
// classifies the average into a tone category with its recommendations.
func (ca *coreAnalyzer) Analyze(img image.Image, options AnalysisOptions) (*models.AnalysisResult, error) {
	start := ca.now()

	if err := options.Validate(); err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	region, err := strategy.ByName(options.Strategy)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	window := region.Window(width, height, options.Fraction)

	acc, clamped := sampleWindow(img, window)
	avg, err := acc.average()
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"strategy": region.GetStrategyName(),
			"sampled":  acc.sampled,
		}).Debug("No skin-like pixels in window")
		return nil, err
	}

	class := Classify(avg)
	tone := class.Tone()
	bundle, found := ca.recommendations.Lookup(tone)

	result := &models.AnalysisResult{
		ID:              uuid.NewString(),
		Source:          options.Source,
		Timestamp:       start,
		Tone:            tone,
		Depth:           class.Depth,
		Warmth:          class.Warmth,
		DominantColor:   hexOf(avg),
		RGB:             avg,
		Luminance:       class.Luminance,
		Hue:             class.Hue,
		Recommendations: bundle,
		Fallback:        !found,
		Sampling: models.SamplingDetails{
			Strategy:        region.GetStrategyName(),
			Fraction:        options.Fraction,
			Window:          clamped,
			SampledPixels:   acc.sampled,
			AcceptedPixels:  acc.accepted,
			Coverage:        acc.coverage(),
			LuminanceStdDev: luminanceSpread(acc.luminances),
		},
		Image: models.ImageMetadata{
			Width:  width,
			Height: height,
		},
	}

	if options.ExtractPalette && ca.palette != nil {
		rect := image.Rect(clamped.MinX, clamped.MinY, clamped.MaxX+1, clamped.MaxY+1).Add(bounds.Min)
		palette, err := ca.palette.Extract(img, rect, options.PaletteSize)
		if err != nil {
			logger.WithError(err).Debug("Palette extraction skipped")
		} else {
			result.Palette = palette
		}
	}

	result.ProcessingTimeSec = ca.now().Sub(start).Seconds()
	return result, nil
}

// sampleWindow visits every coordinate of w, clamping each to the image.
// Coordinates clamped onto the same pixel are sampled again. The returned
// window is the clamped rectangle relative to the image origin.
func sampleWindow(img image.Image, w strategy.Window) (*accumulator, models.Window) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	acc := newAccumulator((w.MaxX - w.MinX + 1) * (w.MaxY - w.MinY + 1))
	for y := w.MinY; y <= w.MaxY; y++ {
		py := clamp(y, 0, height-1) + bounds.Min.Y
		for x := w.MinX; x <= w.MaxX; x++ {
			px := clamp(x, 0, width-1) + bounds.Min.X
			c := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)
			acc.add(c.R, c.G, c.B)
		}
	}

	return acc, models.Window{
		MinX: clamp(w.MinX, 0, width-1),
		MinY: clamp(w.MinY, 0, height-1),
		MaxX: clamp(w.MaxX, 0, width-1),
		MaxY: clamp(w.MaxY, 0, height-1),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hexOf formats a colour as lowercase "#rrggbb"
func hexOf(c models.RGB) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
