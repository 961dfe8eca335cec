package models

import "time"

// AnalysisResult represents the complete result of a skin tone analysis
type AnalysisResult struct {
	ID                string    `json:"id"`
	Source            string    `json:"source,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingTimeSec float64   `json:"processing_time_sec"`

	// Tone category, e.g. "medium warm"
	Tone   string `json:"tone"`
	Depth  Depth  `json:"depth"`
	Warmth Warmth `json:"warmth"`

	// Averaged colour of the accepted pixels
	DominantColor string  `json:"dominant_color"`
	RGB           RGB     `json:"rgb"`
	Luminance     float64 `json:"luminance"`
	Hue           float64 `json:"hue"`

	Recommendations Recommendations `json:"recommendations"`
	// Fallback is set when the table had no entry for Tone and the default bundle was used
	Fallback bool `json:"fallback"`

	Sampling SamplingDetails `json:"sampling"`
	Palette  []PaletteColor  `json:"palette,omitempty"`
	Image    ImageMetadata   `json:"image"`
}

// RGB is an 8-bit colour triple
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ColorInfo pairs a human readable colour name with its hex code
type ColorInfo struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex" yaml:"hex"`
}

// MakeupRecommendations groups makeup shades by product
type MakeupRecommendations struct {
	Lipstick []ColorInfo `json:"lipstick" yaml:"lipstick"`
	Blush    []ColorInfo `json:"blush" yaml:"blush"`
}

// Rationale explains a recommendation bundle in plain words
type Rationale struct {
	Fashion string `json:"fashion,omitempty" yaml:"fashion"`
	Makeup  string `json:"makeup,omitempty" yaml:"makeup"`
}

// Recommendations is the static bundle associated with one tone category
type Recommendations struct {
	Fashion   []ColorInfo           `json:"fashion" yaml:"fashion"`
	Makeup    MakeupRecommendations `json:"makeup" yaml:"makeup"`
	Avoid     []ColorInfo           `json:"avoid" yaml:"avoid"`
	Rationale *Rationale            `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}

// SamplingDetails describes which pixels contributed to the result
type SamplingDetails struct {
	Strategy        string  `json:"strategy"`
	Fraction        float64 `json:"fraction"`
	Window          Window  `json:"window"`
	SampledPixels   int     `json:"sampled_pixels"`
	AcceptedPixels  int     `json:"accepted_pixels"`
	Coverage        float64 `json:"coverage"`
	LuminanceStdDev float64 `json:"luminance_std_dev"`
}

// Window is an inclusive pixel rectangle after clamping to the image bounds
type Window struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// PaletteColor is one prominent colour of the sampled window
type PaletteColor struct {
	Hex   string  `json:"hex"`
	RGB   RGB     `json:"rgb"`
	Share float64 `json:"share"`
}

// ImageMetadata contains metadata about an analyzed image
type ImageMetadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format,omitempty"`
}
