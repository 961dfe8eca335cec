package container

import (
	"fmt"
	"net/http"

	"github.com/glamlens/glamlens/internal/config"
	"github.com/glamlens/glamlens/internal/factory"
	"github.com/glamlens/glamlens/internal/logger"
	"github.com/glamlens/glamlens/internal/observer"
	"github.com/glamlens/glamlens/internal/recommendation"
	"github.com/glamlens/glamlens/internal/repository"
	"github.com/glamlens/glamlens/internal/service"
	"github.com/glamlens/glamlens/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config  *config.Config
	service service.ToneAnalysisService
	metrics *observer.MetricsObserver
	handler http.Handler
}

type options struct {
	localFiles bool
	silent     bool
}

// Option customises the dependency graph
type Option func(*options)

// WithLocalFiles lets the repository read images from the local file system
func WithLocalFiles() Option {
	return func(o *options) { o.localFiles = true }
}

// WithoutEventLogging leaves analysis events to the metrics observer only
func WithoutEventLogging() Option {
	return func(o *options) { o.silent = true }
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	table, err := recommendation.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}

	components := factory.NewComponentFactory(cfg, table)
	sources, err := components.StorageFactory.Sources(o.localFiles)
	if err != nil {
		return nil, err
	}
	imageRepository := repository.NewImageRepository(sources, components.StorageFactory.Decoder(), nil)

	toneAnalyzer, err := components.AnalyzerFactory.CreateAnalyzer(factory.PaletteAnalyzer)
	if err != nil {
		return nil, err
	}

	metrics := observer.NewMetricsObserver()
	events := observer.NewEventPublisher()
	if !o.silent {
		events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	}
	events.Subscribe(metrics)

	svc := service.NewToneAnalysisService(imageRepository, toneAnalyzer, table, events, cfg.MaxWorkers)

	return &Container{
		config:  cfg,
		service: svc,
		metrics: metrics,
		handler: transport.NewHandler(svc, metrics, cfg),
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the tone analysis service
func (c *Container) Service() service.ToneAnalysisService {
	return c.service
}

// Metrics returns the analysis counters
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}
