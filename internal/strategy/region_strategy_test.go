package strategy

import (
	"strings"
	"testing"
)

func TestCenterStrategy_Window(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		fraction      float64
		want          Window
	}{
		{"square 200px at 5%", 200, 200, 0.05, Window{90, 90, 110, 110}},
		{"landscape uses smaller side", 400, 100, 0.05, Window{195, 45, 205, 55}},
		{"floor of one pixel", 10, 10, 0.05, Window{4, 4, 6, 6}},
		{"degenerate 1x1", 1, 1, 0.05, Window{-1, -1, 1, 1}},
		{"odd dimensions", 101, 51, 0.1, Window{45, 20, 55, 30}},
	}

	s := NewCenterStrategy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Window(tt.width, tt.height, tt.fraction)
			if got != tt.want {
				t.Errorf("Window(%d, %d, %g) = %+v, want %+v", tt.width, tt.height, tt.fraction, got, tt.want)
			}
		})
	}
}

func TestWristStrategy_Window(t *testing.T) {
	s := NewWristStrategy()

	got := s.Window(1000, 800, 0.05)
	want := Window{MinX: 450, MinY: 480, MaxX: 529, MaxY: 519}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	// Small images still get a 10x10 band
	small := s.Window(50, 50, 0.05)
	if small.MaxX-small.MinX+1 != 10 || small.MaxY-small.MinY+1 != 10 {
		t.Errorf("Expected 10x10 minimum band, got %+v", small)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "center", "CENTER", " wrist "} {
		s, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q) returned error: %v", name, err)
		}
		if s == nil {
			t.Fatalf("ByName(%q) returned nil strategy", name)
		}
	}

	s, _ := ByName("")
	if s.GetStrategyName() != Center {
		t.Errorf("Expected empty name to select center, got %s", s.GetStrategyName())
	}

	_, err := ByName("edges")
	if err == nil || !strings.Contains(err.Error(), "center, wrist") {
		t.Errorf("Expected unknown strategy error listing names, got %v", err)
	}
}
