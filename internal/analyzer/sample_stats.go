package analyzer

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// luminanceSpread returns the population standard deviation of the accepted
// pixel luminances. A high spread means the window mixed skin with shadow
// or highlight.
func luminanceSpread(luminances []float64) float64 {
	if len(luminances) < 2 {
		return 0
	}
	_, std := stat.PopMeanStdDev(luminances, nil)
	if math.IsNaN(std) {
		return 0
	}
	return std
}
