package factory

import (
	"fmt"

	"github.com/glamlens/glamlens/internal/analyzer"
	"github.com/glamlens/glamlens/internal/config"
	"github.com/glamlens/glamlens/internal/repository"
	"github.com/glamlens/glamlens/internal/storage"
	"github.com/glamlens/glamlens/pkg/validation"
)

// AnalyzerType represents different types of tone analyzers
type AnalyzerType string

const (
	// StandardAnalyzer averages the sampled window only
	StandardAnalyzer AnalyzerType = "standard"
	// PaletteAnalyzer also clusters the window into a colour palette on request
	PaletteAnalyzer AnalyzerType = "palette"
)

// StorageType represents different types of image sources
type StorageType string

const (
	// HTTPStorage for HTTP-based image fetching
	HTTPStorage StorageType = "http"
	// AzureStorage for Azure blob storage
	AzureStorage StorageType = "azure"
	// LocalStorage for local file system
	LocalStorage StorageType = "local"
)

// AnalyzerFactory creates tone analyzers
type AnalyzerFactory interface {
	CreateAnalyzer(analyzerType AnalyzerType) (analyzer.ToneAnalyzer, error)
}

// StorageFactory creates image fetchers
type StorageFactory interface {
	CreateStorage(storageType StorageType) (storage.ImageFetcher, error)
	// Sources builds every fetcher the configuration enables
	Sources(allowLocal bool) (repository.Sources, error)
	Decoder() *storage.Decoder
}

type analyzerFactory struct {
	recommendations analyzer.RecommendationSource
}

// NewAnalyzerFactory creates a new analyzer factory
func NewAnalyzerFactory(recommendations analyzer.RecommendationSource) AnalyzerFactory {
	return &analyzerFactory{recommendations: recommendations}
}

// CreateAnalyzer creates an analyzer based on the specified type
func (f *analyzerFactory) CreateAnalyzer(analyzerType AnalyzerType) (analyzer.ToneAnalyzer, error) {
	switch analyzerType {
	case StandardAnalyzer:
		return analyzer.NewToneAnalyzer(f.recommendations, analyzer.WithPaletteExtractor(nil))
	case PaletteAnalyzer:
		return analyzer.NewToneAnalyzer(f.recommendations, analyzer.WithPaletteExtractor(analyzer.NewPaletteExtractor()))
	default:
		return nil, fmt.Errorf("unsupported analyzer type: %s", analyzerType)
	}
}

type storageFactory struct {
	cfg     *config.Config
	decoder *storage.Decoder
}

// NewStorageFactory creates a storage factory sharing one decoder built from
// the configured limits
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{
		cfg: cfg,
		decoder: storage.NewDecoder(validation.ImageLimits{
			MaxBytes:  cfg.MaxRequestBodySize,
			MaxPixels: cfg.MaxImagePixels,
		}),
	}
}

func (f *storageFactory) Decoder() *storage.Decoder {
	return f.decoder
}

// CreateStorage creates a fetcher based on the specified type
func (f *storageFactory) CreateStorage(storageType StorageType) (storage.ImageFetcher, error) {
	switch storageType {
	case HTTPStorage:
		return storage.NewHTTPImageFetcher(f.decoder, f.cfg.ImageFetchTimeout), nil
	case AzureStorage:
		if !f.cfg.AzureEnabled() {
			return nil, fmt.Errorf("azure storage requires AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY")
		}
		fetcher, err := storage.NewAzureBlobFetcher(f.cfg.AzureStorageAccount, f.cfg.AzureStorageKey, f.decoder)
		if err != nil {
			return nil, err
		}
		return fetcher, nil
	case LocalStorage:
		return storage.NewLocalImageFetcher(f.decoder), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

func (f *storageFactory) Sources(allowLocal bool) (repository.Sources, error) {
	var sources repository.Sources
	var err error

	if sources.HTTP, err = f.CreateStorage(HTTPStorage); err != nil {
		return sources, err
	}
	if f.cfg.AzureEnabled() {
		if sources.Azure, err = f.CreateStorage(AzureStorage); err != nil {
			return sources, fmt.Errorf("failed to create azure fetcher: %w", err)
		}
	}
	if allowLocal {
		if sources.Local, err = f.CreateStorage(LocalStorage); err != nil {
			return sources, err
		}
	}
	return sources, nil
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	AnalyzerFactory AnalyzerFactory
	StorageFactory  StorageFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(cfg *config.Config, recommendations analyzer.RecommendationSource) *ComponentFactory {
	return &ComponentFactory{
		AnalyzerFactory: NewAnalyzerFactory(recommendations),
		StorageFactory:  NewStorageFactory(cfg),
	}
}
