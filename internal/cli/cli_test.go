package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glamlens/glamlens/pkg/models"
)

func writePNG(t *testing.T, dir, name string, fill color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, fill)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyze_Text(t *testing.T) {
	path := writePNG(t, t.TempDir(), "selfie.png", color.RGBA{220, 180, 150, 255})

	out, _, err := run(t, "analyze", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "medium warm (#dcb496") {
		t.Errorf("Expected tone line, got:\n%s", out)
	}
	if !strings.Contains(out, "fashion:  Terracotta") {
		t.Errorf("Expected recommendations, got:\n%s", out)
	}
}

func TestAnalyze_JSONBatch(t *testing.T) {
	dir := t.TempDir()
	skin := writePNG(t, dir, "skin.png", color.RGBA{220, 180, 150, 255})
	slate := writePNG(t, dir, "slate.png", color.RGBA{40, 60, 80, 255})

	out, _, err := run(t, "analyze", "--json", "--workers", "2", "--strategy", "wrist", skin, slate)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 photos") {
		t.Errorf("Expected partial failure error, got %v", err)
	}

	var entries []batchOutput
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	if len(entries) != 2 || entries[0].Source != skin || entries[1].Source != slate {
		t.Fatalf("Unexpected entries %+v", entries)
	}
	if entries[0].Result == nil || entries[0].Result.Sampling.Strategy != "wrist" {
		t.Errorf("Unexpected first entry %+v", entries[0])
	}
	if entries[1].Error == nil || entries[1].Error.Type != "no_skin_detected" {
		t.Errorf("Unexpected second entry %+v", entries[1])
	}
}

func TestAnalyze_InvalidFlags(t *testing.T) {
	path := writePNG(t, t.TempDir(), "selfie.png", color.RGBA{220, 180, 150, 255})

	if _, _, err := run(t, "analyze", "--fraction", "0.9", path); err == nil {
		t.Error("Expected error for fraction above 0.5")
	}
	if _, _, err := run(t, "analyze", "--json", "--fraction", "NaN", path); err == nil {
		t.Error("Expected error for NaN fraction")
	}
	if _, _, err := run(t, "analyze", "--strategy", "forehead", path); err == nil {
		t.Error("Expected error for unknown strategy")
	}
	if _, _, err := run(t, "analyze"); err == nil {
		t.Error("Expected error without sources")
	}
}

func TestTones(t *testing.T) {
	out, _, err := run(t, "tones")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 9 {
		t.Errorf("Expected 9 tones, got %d:\n%s", len(lines), out)
	}

	out, _, err = run(t, "tones", "--json", "deep", "cool")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var resp models.ToneResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil || resp.Tone != "deep cool" {
		t.Errorf("Unexpected tone output %q (%v)", out, err)
	}

	_, _, err = run(t, "tones", "medum-warm")
	if err == nil || !strings.Contains(err.Error(), `did you mean "medium warm"?`) {
		t.Errorf("Expected suggestion, got %v", err)
	}
}

func TestAnalyze_CSV(t *testing.T) {
	dir := t.TempDir()
	skin := writePNG(t, dir, "skin.png", color.RGBA{220, 180, 150, 255})

	out, _, err := run(t, "analyze", "--csv", skin, filepath.Join(dir, "missing.png"))
	if err == nil {
		t.Error("Expected error for the missing photo")
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "source,tone,hex,r,g,b,") {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "medium warm,#dcb496,220,180,150,") {
		t.Errorf("Unexpected row %q", lines[1])
	}
	if !strings.Contains(lines[2], "missing.png") || strings.Contains(lines[2], "medium warm") {
		t.Errorf("Unexpected error row %q", lines[2])
	}

	if _, _, err := run(t, "analyze", "--csv", "--json", skin); err == nil {
		t.Error("Expected --csv and --json to be mutually exclusive")
	}
}
