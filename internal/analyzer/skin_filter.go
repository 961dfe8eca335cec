package analyzer

import (
	"math"

	"github.com/glamlens/glamlens/pkg/models"
)

// IsSkinLike reports whether a pixel passes the RGB skin heuristic. Every
// comparison is strict.
func IsSkinLike(r, g, b uint8) bool {
	ri, gi, bi := int(r), int(g), int(b)
	hi := max(ri, gi, bi)
	lo := min(ri, gi, bi)
	diff := ri - gi
	if diff < 0 {
		diff = -diff
	}
	return ri > 95 && gi > 40 && bi > 20 &&
		hi-lo > 15 &&
		diff > 15 &&
		ri > gi && ri > bi
}

// maxSpreadSamples bounds how many luminances one analysis keeps for the
// spread statistic
const maxSpreadSamples = 1 << 16

// accumulator sums the channels of accepted pixels for one analysis call.
// Luminances are kept for every stride-th accepted pixel only.
type accumulator struct {
	rSum, gSum, bSum int
	accepted         int
	sampled          int
	stride           int
	luminances       []float64
}

// newAccumulator sizes the accumulator for a window of capacity pixels
func newAccumulator(capacity int) *accumulator {
	stride := 1
	if capacity > maxSpreadSamples {
		stride = (capacity + maxSpreadSamples - 1) / maxSpreadSamples
	}
	return &accumulator{
		stride:     stride,
		luminances: make([]float64, 0, min(max(capacity, 0), maxSpreadSamples)),
	}
}

func (a *accumulator) add(r, g, b uint8) {
	a.sampled++
	if !IsSkinLike(r, g, b) {
		return
	}
	a.rSum += int(r)
	a.gSum += int(g)
	a.bSum += int(b)
	if a.accepted%a.stride == 0 {
		a.luminances = append(a.luminances, Luminance(float64(r), float64(g), float64(b)))
	}
	a.accepted++
}

// average returns the per-channel mean rounded half away from zero
func (a *accumulator) average() (models.RGB, error) {
	if a.accepted == 0 {
		return models.RGB{}, ErrNoSkinDetected
	}
	n := float64(a.accepted)
	return models.RGB{
		R: uint8(math.Round(float64(a.rSum) / n)),
		G: uint8(math.Round(float64(a.gSum) / n)),
		B: uint8(math.Round(float64(a.bSum) / n)),
	}, nil
}

func (a *accumulator) coverage() float64 {
	if a.sampled == 0 {
		return 0
	}
	return float64(a.accepted) / float64(a.sampled)
}
