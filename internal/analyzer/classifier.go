package analyzer

import (
	"math"

	"github.com/glamlens/glamlens/pkg/models"
)

// Classification thresholds
const (
	fairLuminance = 200.0
	deepLuminance = 85.0
	warmHueLow    = -30.0
	warmHueHigh   = 60.0
	coolHueHigh   = 170.0
)

// Classification is the tone category derived from an average colour
type Classification struct {
	Depth     models.Depth
	Warmth    models.Warmth
	Luminance float64
	Hue       float64
}

// Tone returns the lookup key, e.g. "medium warm"
func (c Classification) Tone() string {
	return models.ToneKey(c.Depth, c.Warmth)
}

// Luminance computes BT.709 relative luminance on 0..255 channels
func Luminance(r, g, b float64) float64 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// HueAngle returns atan2(√3·(g−b), 2r−g−b) in degrees, in (−180, 180]
func HueAngle(r, g, b float64) float64 {
	return math.Atan2(math.Sqrt(3)*(g-b), 2*r-g-b) * 180 / math.Pi
}

// DepthFor buckets a luminance; both thresholds are exclusive
func DepthFor(lum float64) models.Depth {
	switch {
	case lum > fairLuminance:
		return models.DepthFair
	case lum < deepLuminance:
		return models.DepthDeep
	default:
		return models.DepthMedium
	}
}

// WarmthFor buckets a hue angle
func WarmthFor(hue float64) models.Warmth {
	switch {
	case hue > warmHueLow && hue < warmHueHigh:
		return models.WarmthWarm
	case hue <= warmHueLow || hue >= coolHueHigh:
		return models.WarmthCool
	default:
		return models.WarmthNeutral
	}
}

// Classify maps an average colour to one of the nine tone categories
func Classify(c models.RGB) Classification {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	lum := Luminance(r, g, b)
	hue := HueAngle(r, g, b)
	return Classification{
		Depth:     DepthFor(lum),
		Warmth:    WarmthFor(hue),
		Luminance: lum,
		Hue:       hue,
	}
}
