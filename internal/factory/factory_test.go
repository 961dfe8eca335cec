package factory

import (
	"encoding/base64"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/glamlens/glamlens/internal/analyzer"
	"github.com/glamlens/glamlens/internal/config"
	"github.com/glamlens/glamlens/internal/recommendation"
	"github.com/glamlens/glamlens/internal/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "8080",
		RequestTimeout:     time.Second,
		ImageFetchTimeout:  time.Second,
		MaxRequestBodySize: 1 << 20,
		MaxImagePixels:     1_000_000,
		SampleFraction:     0.05,
		SamplingStrategy:   "center",
		PaletteSize:        3,
	}
}

func TestCreateStorage(t *testing.T) {
	f := NewStorageFactory(testConfig())

	if fetcher, err := f.CreateStorage(HTTPStorage); err != nil {
		t.Errorf("Unexpected error: %v", err)
	} else if _, ok := fetcher.(*storage.HTTPImageFetcher); !ok {
		t.Errorf("Expected *storage.HTTPImageFetcher, got %T", fetcher)
	}

	if fetcher, err := f.CreateStorage(LocalStorage); err != nil {
		t.Errorf("Unexpected error: %v", err)
	} else if _, ok := fetcher.(*storage.LocalImageFetcher); !ok {
		t.Errorf("Expected *storage.LocalImageFetcher, got %T", fetcher)
	}

	if _, err := f.CreateStorage(AzureStorage); err == nil {
		t.Error("Expected error for azure without credentials")
	}
	if _, err := f.CreateStorage("ftp"); err == nil {
		t.Error("Expected error for unsupported storage type")
	}
}

func TestSources(t *testing.T) {
	cfg := testConfig()
	f := NewStorageFactory(cfg)

	sources, err := f.Sources(false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sources.HTTP == nil || sources.Azure != nil || sources.Local != nil {
		t.Errorf("Expected HTTP only, got %+v", sources)
	}

	sources, err = f.Sources(true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sources.Local == nil {
		t.Error("Expected local fetcher when allowed")
	}

	cfg.AzureStorageAccount = "glamlens"
	cfg.AzureStorageKey = base64.StdEncoding.EncodeToString([]byte("not-a-real-key"))
	sources, err = NewStorageFactory(cfg).Sources(false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := sources.Azure.(*storage.AzureBlobFetcher); !ok {
		t.Errorf("Expected azure fetcher, got %T", sources.Azure)
	}
}

func TestCreateAnalyzer(t *testing.T) {
	f := NewAnalyzerFactory(recommendation.MustLoadEmbedded())

	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				img.Set(x, y, color.RGBA{220, 180, 150, 255})
			} else {
				img.Set(x, y, color.RGBA{110, 70, 50, 255})
			}
		}
	}
	options := analyzer.DefaultOptions().WithFraction(0.5).WithPalette(2)

	standard, err := f.CreateAnalyzer(StandardAnalyzer)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result, err := standard.Analyze(img, options)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Palette) != 0 {
		t.Errorf("Expected standard analyzer to skip the palette, got %v", result.Palette)
	}

	withPalette, err := f.CreateAnalyzer(PaletteAnalyzer)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result, err = withPalette.Analyze(img, options)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Palette) == 0 {
		t.Error("Expected a palette")
	}

	if _, err := f.CreateAnalyzer("ocr"); err == nil {
		t.Error("Expected error for unsupported analyzer type")
	}
}
