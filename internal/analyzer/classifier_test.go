package analyzer

import (
	"errors"
	"math"
	"testing"

	"github.com/glamlens/glamlens/pkg/models"
)

func TestIsSkinLike(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    bool
	}{
		{"lower boundary accepted", 96, 41, 21, true},
		{"red at 95 rejected", 95, 41, 21, false},
		{"green at 40 rejected", 120, 40, 30, false},
		{"blue at 20 rejected", 120, 60, 20, false},
		{"red-green gap of 15 rejected", 120, 105, 30, false},
		{"green dominant rejected", 120, 140, 60, false},
		{"blue dominant rejected", 120, 60, 140, false},
		{"typical skin", 220, 180, 150, true},
		{"peach puff", 0xFF, 0xDA, 0xB9, true},
		{"slate", 40, 60, 80, false},
		{"black", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSkinLike(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("IsSkinLike(%d, %d, %d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestDepthFor(t *testing.T) {
	tests := []struct {
		lum  float64
		want models.Depth
	}{
		{255, models.DepthFair},
		{200.01, models.DepthFair},
		{200, models.DepthMedium},
		{150, models.DepthMedium},
		{85, models.DepthMedium},
		{84.99, models.DepthDeep},
		{0, models.DepthDeep},
	}
	for _, tt := range tests {
		if got := DepthFor(tt.lum); got != tt.want {
			t.Errorf("DepthFor(%g) = %s, want %s", tt.lum, got, tt.want)
		}
	}
}

func TestWarmthFor(t *testing.T) {
	tests := []struct {
		hue  float64
		want models.Warmth
	}{
		{-180, models.WarmthCool},
		{-30, models.WarmthCool},
		{-29.99, models.WarmthWarm},
		{0, models.WarmthWarm},
		{59.99, models.WarmthWarm},
		{60, models.WarmthNeutral},
		{120, models.WarmthNeutral},
		{169.99, models.WarmthNeutral},
		{170, models.WarmthCool},
		{180, models.WarmthCool},
	}
	for _, tt := range tests {
		if got := WarmthFor(tt.hue); got != tt.want {
			t.Errorf("WarmthFor(%g) = %s, want %s", tt.hue, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		rgb  models.RGB
		want string
	}{
		{"peach puff", models.RGB{R: 0xFF, G: 0xDA, B: 0xB9}, "fair warm"},
		{"light tan", models.RGB{R: 220, G: 180, B: 150}, "medium warm"},
		{"dark brown", models.RGB{R: 110, G: 70, B: 50}, "deep warm"},
		{"grey", models.RGB{R: 128, G: 128, B: 128}, "medium warm"},
		{"magenta cast", models.RGB{R: 200, G: 120, B: 220}, "medium cool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.rgb)
			if c.Tone() != tt.want {
				t.Errorf("Classify(%+v) = %q (L=%.2f H=%.2f), want %q", tt.rgb, c.Tone(), c.Luminance, c.Hue, tt.want)
			}
		})
	}
}

func TestLuminanceAndHue(t *testing.T) {
	if got := Luminance(255, 255, 255); math.Abs(got-255) > 1e-9 {
		t.Errorf("Expected white luminance 255, got %f", got)
	}
	if got := HueAngle(255, 0, 0); got != 0 {
		t.Errorf("Expected pure red hue 0, got %f", got)
	}
	if got := HueAngle(0, 255, 0); math.Abs(got-120) > 1e-9 {
		t.Errorf("Expected pure green hue 120, got %f", got)
	}
	if got := HueAngle(0, 0, 255); math.Abs(got+120) > 1e-9 {
		t.Errorf("Expected pure blue hue -120, got %f", got)
	}
}

func TestAccumulator(t *testing.T) {
	acc := newAccumulator(4)
	if _, err := acc.average(); !errors.Is(err, ErrNoSkinDetected) {
		t.Fatalf("Expected ErrNoSkinDetected for empty accumulator, got %v", err)
	}

	acc.add(220, 180, 150)
	acc.add(0, 0, 0)
	acc.add(221, 181, 151)

	avg, err := acc.average()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// 220.5 rounds half away from zero
	if avg != (models.RGB{R: 221, G: 181, B: 151}) {
		t.Errorf("Expected (221,181,151), got %+v", avg)
	}
	if acc.sampled != 3 || acc.accepted != 2 {
		t.Errorf("Expected 2/3 accepted, got %d/%d", acc.accepted, acc.sampled)
	}
	if math.Abs(acc.coverage()-2.0/3.0) > 1e-9 {
		t.Errorf("Unexpected coverage %f", acc.coverage())
	}
}

func TestAccumulator_LargeWindowKeepsBoundedLuminances(t *testing.T) {
	const window = 1_000_000
	acc := newAccumulator(window)
	for i := 0; i < window; i++ {
		if i < window/2 {
			acc.add(220, 180, 150)
		} else {
			acc.add(200, 160, 130)
		}
	}

	if acc.accepted != window {
		t.Fatalf("Expected every pixel accepted, got %d", acc.accepted)
	}
	if len(acc.luminances) > maxSpreadSamples || cap(acc.luminances) > maxSpreadSamples {
		t.Errorf("Expected at most %d kept luminances, got len=%d cap=%d",
			maxSpreadSamples, len(acc.luminances), cap(acc.luminances))
	}
	// both halves are strided evenly, so the spread is half the 20-level gap
	if got := luminanceSpread(acc.luminances); math.Abs(got-10) > 1e-6 {
		t.Errorf("Expected spread 10, got %f", got)
	}
	avg, err := acc.average()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if avg != (models.RGB{R: 210, G: 170, B: 140}) {
		t.Errorf("Expected (210,170,140), got %+v", avg)
	}
}

func TestLuminanceSpread(t *testing.T) {
	if got := luminanceSpread(nil); got != 0 {
		t.Errorf("Expected 0 for no samples, got %f", got)
	}
	if got := luminanceSpread([]float64{100}); got != 0 {
		t.Errorf("Expected 0 for one sample, got %f", got)
	}
	if got := luminanceSpread([]float64{100, 110}); math.Abs(got-5) > 1e-9 {
		t.Errorf("Expected population std-dev 5, got %f", got)
	}
}
