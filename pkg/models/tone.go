package models

// Depth is the coarse brightness bucket of a skin tone
type Depth string

const (
	DepthFair   Depth = "fair"
	DepthMedium Depth = "medium"
	DepthDeep   Depth = "deep"
)

// Warmth is the coarse hue-direction bucket of a skin tone
type Warmth string

const (
	WarmthWarm    Warmth = "warm"
	WarmthNeutral Warmth = "neutral"
	WarmthCool    Warmth = "cool"
)

// Depths lists depth buckets from lightest to darkest
var Depths = []Depth{DepthFair, DepthMedium, DepthDeep}

// Warmths lists warmth buckets
var Warmths = []Warmth{WarmthWarm, WarmthNeutral, WarmthCool}

// ToneKey builds the lookup key for a tone category, e.g. "fair warm"
func ToneKey(d Depth, w Warmth) string {
	return string(d) + " " + string(w)
}

// AllTones returns the nine tone keys in depth-major order
func AllTones() []string {
	keys := make([]string, 0, len(Depths)*len(Warmths))
	for _, d := range Depths {
		for _, w := range Warmths {
			keys = append(keys, ToneKey(d, w))
		}
	}
	return keys
}
