package analyzer

import (
	"fmt"

	"github.com/glamlens/glamlens/internal/strategy"
)

const (
	// DefaultSampleFraction is the share of the smaller image side used as the
	// centre window half-size
	DefaultSampleFraction = 0.05
	// MaxSampleFraction keeps the centre window inside the image
	MaxSampleFraction = 0.5
	// DefaultPaletteSize is the number of prominent colours extracted
	DefaultPaletteSize = 3
	// MaxPaletteSize bounds the k-means cluster count
	MaxPaletteSize = 8
)

// AnalysisOptions provides flexible configuration for tone analysis
type AnalysisOptions struct {
	// Sampling
	Strategy string
	Fraction float64

	// Palette extraction of the sampled window
	ExtractPalette bool
	PaletteSize    int

	// Source label copied into the result
	Source string
}

// DefaultOptions returns default analysis options
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		Strategy:       strategy.Center,
		Fraction:       DefaultSampleFraction,
		ExtractPalette: false,
		PaletteSize:    DefaultPaletteSize,
	}
}

// WithStrategy returns options using the named sampling strategy
func (opts AnalysisOptions) WithStrategy(name string) AnalysisOptions {
	opts.Strategy = name
	return opts
}

// WithFraction returns options with a custom window fraction
func (opts AnalysisOptions) WithFraction(fraction float64) AnalysisOptions {
	opts.Fraction = fraction
	return opts
}

// WithPalette enables palette extraction with k colours
func (opts AnalysisOptions) WithPalette(k int) AnalysisOptions {
	opts.ExtractPalette = true
	opts.PaletteSize = k
	return opts
}

// WithSource labels the result with where the image came from
func (opts AnalysisOptions) WithSource(source string) AnalysisOptions {
	opts.Source = source
	return opts
}

// Validate checks option ranges
func (opts AnalysisOptions) Validate() error {
	// NaN fails every comparison, so test for the valid range
	if !(opts.Fraction > 0 && opts.Fraction <= MaxSampleFraction) {
		return fmt.Errorf("%w: fraction must be in (0, %g], got %g", ErrInvalidOptions, MaxSampleFraction, opts.Fraction)
	}
	if _, err := strategy.ByName(opts.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if opts.ExtractPalette && (opts.PaletteSize < 1 || opts.PaletteSize > MaxPaletteSize) {
		return fmt.Errorf("%w: palette size must be between 1 and %d, got %d", ErrInvalidOptions, MaxPaletteSize, opts.PaletteSize)
	}
	return nil
}
