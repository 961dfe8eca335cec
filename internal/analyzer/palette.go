package analyzer

import (
	"fmt"
	"image"
	"sort"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/glamlens/glamlens/pkg/models"
	"golang.org/x/image/draw"
)

// minPaletteArea is the smallest window k-means is run on
const minPaletteArea = 16

type kmeansPalette struct{}

// NewPaletteExtractor creates a k-means based palette extractor
func NewPaletteExtractor() PaletteExtractor {
	return &kmeansPalette{}
}

// Extract clusters the pixels inside rect and returns up to k colours ordered
// by share, largest first.
func (p *kmeansPalette) Extract(img image.Image, rect image.Rectangle, k int) ([]models.PaletteColor, error) {
	rect = rect.Intersect(img.Bounds())
	if rect.Dx()*rect.Dy() < minPaletteArea {
		return nil, fmt.Errorf("window %v too small for palette extraction", rect)
	}

	crop := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(crop, crop.Bounds(), img, rect.Min, draw.Src)

	items, err := prominentcolor.KmeansWithAll(k, crop, prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, []prominentcolor.ColorBackgroundMask{})
	if err != nil {
		return nil, fmt.Errorf("k-means failed: %w", err)
	}

	total := 0
	for _, item := range items {
		total += item.Cnt
	}
	if total == 0 {
		return nil, fmt.Errorf("k-means produced no clusters")
	}

	palette := make([]models.PaletteColor, 0, len(items))
	for _, item := range items {
		if item.Cnt == 0 {
			continue
		}
		rgb := models.RGB{R: uint8(item.Color.R), G: uint8(item.Color.G), B: uint8(item.Color.B)}
		palette = append(palette, models.PaletteColor{
			Hex:   hexOf(rgb),
			RGB:   rgb,
			Share: float64(item.Cnt) / float64(total),
		})
	}
	sort.SliceStable(palette, func(i, j int) bool {
		return palette[i].Share > palette[j].Share
	})
	return palette, nil
}
