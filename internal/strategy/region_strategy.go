package strategy

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Window is an inclusive rectangle of sample coordinates relative to the image
// origin. It may extend past the image; the sampler clamps every coordinate.
type Window struct {
	MinX, MinY int
	MaxX, MaxY int
}

// RegionStrategy decides which part of a photo is sampled for skin colour
type RegionStrategy interface {
	Window(width, height int, fraction float64) Window
	GetStrategyName() string
}

const (
	// Center samples a square around the image centre
	Center = "center"
	// Wrist samples the lower-middle band where a wrist or chin sits in a selfie
	Wrist = "wrist"
)

// CenterStrategy samples a (2s+1)x(2s+1) square around the centre, where
// s = max(1, floor(min(width, height) * fraction)).
type CenterStrategy struct{}

// NewCenterStrategy creates the default centre sampling strategy
func NewCenterStrategy() RegionStrategy {
	return &CenterStrategy{}
}

// Window returns the centred sample square
func (s *CenterStrategy) Window(width, height int, fraction float64) Window {
	size := int(math.Floor(float64(min(width, height)) * fraction))
	if size < 1 {
		size = 1
	}
	cx, cy := width/2, height/2
	return Window{
		MinX: cx - size,
		MinY: cy - size,
		MaxX: cx + size,
		MaxY: cy + size,
	}
}

// GetStrategyName returns the strategy name
func (s *CenterStrategy) GetStrategyName() string {
	return Center
}

// WristStrategy samples a fixed-offset band at 45% width / 60% height. The
// band is 8% of the width by 5% of the height, never smaller than 10px.
// The fraction parameter does not apply.
type WristStrategy struct{}

// NewWristStrategy creates the wrist/selfie sampling strategy
func NewWristStrategy() RegionStrategy {
	return &WristStrategy{}
}

// Window returns the offset sample band
func (s *WristStrategy) Window(width, height int, _ float64) Window {
	w := max(10, int(math.Floor(float64(width)*0.08)))
	h := max(10, int(math.Floor(float64(height)*0.05)))
	x := int(math.Floor(float64(width) * 0.45))
	y := int(math.Floor(float64(height) * 0.6))
	return Window{
		MinX: x,
		MinY: y,
		MaxX: x + w - 1,
		MaxY: y + h - 1,
	}
}

// GetStrategyName returns the strategy name
func (s *WristStrategy) GetStrategyName() string {
	return Wrist
}

var registry = map[string]func() RegionStrategy{
	Center: NewCenterStrategy,
	Wrist:  NewWristStrategy,
}

// ByName resolves a strategy; an empty name selects Center
func ByName(name string) (RegionStrategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Center
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown sampling strategy %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// Names lists the registered strategies
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
