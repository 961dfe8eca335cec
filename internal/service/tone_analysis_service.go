package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/glamlens/glamlens/internal/analyzer"
	apperrors "github.com/glamlens/glamlens/internal/errors"
	"github.com/glamlens/glamlens/internal/observer"
	"github.com/glamlens/glamlens/internal/recommendation"
	"github.com/glamlens/glamlens/internal/repository"
	"github.com/glamlens/glamlens/internal/storage"
	"github.com/glamlens/glamlens/pkg/models"
)

// SourceUpload labels results of images sent in the request body
const SourceUpload = "upload"

// ToneCatalog is the read side of the recommendation table
type ToneCatalog interface {
	Lookup(tone string) (models.Recommendations, bool)
	Tones() []string
	Suggest(query string) (string, bool)
}

// ToneAnalysisService analyzes photos from any supported source and serves
// the recommendation catalogue
type ToneAnalysisService interface {
	AnalyzeUpload(ctx context.Context, body io.Reader, options analyzer.AnalysisOptions) (*models.AnalysisResult, error)
	AnalyzeURL(ctx context.Context, imageURL string, options analyzer.AnalysisOptions) (*models.AnalysisResult, error)
	AnalyzeFile(ctx context.Context, path string, options analyzer.AnalysisOptions) (*models.AnalysisResult, error)
	AnalyzeBatch(ctx context.Context, sources []string, options analyzer.AnalysisOptions, onDone func(BatchItem)) []BatchItem

	Recommendations(tone string) (*models.ToneResponse, error)
	Tones() []string
}

type toneAnalysisService struct {
	imageRepo  repository.ImageRepository
	analyzer   analyzer.ToneAnalyzer
	catalog    ToneCatalog
	events     observer.Subject
	maxWorkers int
}

// NewToneAnalysisService creates a new tone analysis service. events may be nil.
func NewToneAnalysisService(
	imageRepository repository.ImageRepository,
	toneAnalyzer analyzer.ToneAnalyzer,
	catalog ToneCatalog,
	events observer.Subject,
	maxWorkers int,
) ToneAnalysisService {
	if events == nil {
		events = observer.NewEventPublisher()
	}
	return &toneAnalysisService{
		imageRepo:  imageRepository,
		analyzer:   toneAnalyzer,
		catalog:    catalog,
		events:     events,
		maxWorkers: maxWorkers,
	}
}

// AnalyzeUpload decodes and analyzes an uploaded image
func (s *toneAnalysisService) AnalyzeUpload(ctx context.Context, body io.Reader, options analyzer.AnalysisOptions) (*models.AnalysisResult, error) {
	if options.Source == "" {
		options.Source = SourceUpload
	}
	return s.run(ctx, options, func() (*storage.DecodedImage, error) {
		return s.imageRepo.DecodeUpload(body)
	})
}

// AnalyzeURL fetches an http(s) or Azure blob image and analyzes it
func (s *toneAnalysisService) AnalyzeURL(ctx context.Context, imageURL string, options analyzer.AnalysisOptions) (*models.AnalysisResult, error) {
	options.Source = imageURL
	if !strings.Contains(imageURL, "://") {
		return nil, apperrors.NewValidationError("URL scheme not allowed", nil).WithDetails(imageURL)
	}
	return s.run(ctx, options, func() (*storage.DecodedImage, error) {
		return s.imageRepo.FetchImage(ctx, imageURL)
	})
}

// AnalyzeFile analyzes an image on the local file system
func (s *toneAnalysisService) AnalyzeFile(ctx context.Context, path string, options analyzer.AnalysisOptions) (*models.AnalysisResult, error) {
	options.Source = path
	if strings.Contains(path, "://") {
		return nil, apperrors.NewValidationError("expected a file path, got a URL", nil).WithDetails(path)
	}
	return s.run(ctx, options, func() (*storage.DecodedImage, error) {
		return s.imageRepo.FetchImage(ctx, path)
	})
}

func (s *toneAnalysisService) run(ctx context.Context, options analyzer.AnalysisOptions, load func() (*storage.DecodedImage, error)) (*models.AnalysisResult, error) {
	start := time.Now()
	s.publish(ctx, observer.AnalysisEvent{EventType: observer.AnalysisStarted, Source: options.Source})

	img, err := load()
	if err != nil {
		err = asAppError(err, "failed to load image")
		s.publishFailure(ctx, observer.ImageFetchFailed, options.Source, start, err)
		return nil, err
	}
	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.ImageFetched,
		Source:         options.Source,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata: map[string]interface{}{
			"format": img.Format,
			"bytes":  img.Bytes,
		},
	})

	result, err := s.analyzer.Analyze(img.Image, options)
	if err != nil {
		err = translateAnalyzerError(err)
		eventType := observer.AnalysisFailed
		if apperrors.IsType(err, apperrors.ErrorTypeNoSkinDetected) {
			eventType = observer.NoSkinDetected
		}
		s.publishFailure(ctx, eventType, options.Source, start, err)
		return nil, err
	}
	result.Image.Format = img.Format

	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		Source:         options.Source,
		ProcessingTime: time.Since(start),
		Success:        true,
		Tone:           result.Tone,
		Metadata: map[string]interface{}{
			"strategy": result.Sampling.Strategy,
			"coverage": result.Sampling.Coverage,
			"fallback": result.Fallback,
		},
	})
	return result, nil
}

// Recommendations returns the bundle for a tone. Unknown tones are a
// not-found error carrying the closest known tone as a hint.
func (s *toneAnalysisService) Recommendations(tone string) (*models.ToneResponse, error) {
	bundle, found := s.catalog.Lookup(tone)
	if !found {
		err := apperrors.NewNotFoundError("unknown tone", nil).WithDetails(tone)
		if suggestion, ok := s.catalog.Suggest(tone); ok {
			err = err.WithDetails(fmt.Sprintf("did you mean %q?", suggestion))
		}
		return nil, err
	}
	return &models.ToneResponse{
		Tone:            recommendation.NormalizeTone(tone),
		Recommendations: bundle,
	}, nil
}

// Tones lists the catalogue keys
func (s *toneAnalysisService) Tones() []string {
	return s.catalog.Tones()
}

func (s *toneAnalysisService) publish(ctx context.Context, event observer.AnalysisEvent) {
	event.Timestamp = time.Now()
	s.events.NotifyObservers(ctx, event)
}

func (s *toneAnalysisService) publishFailure(ctx context.Context, eventType observer.EventType, source string, start time.Time, err error) {
	event := observer.AnalysisEvent{
		EventType:      eventType,
		Source:         source,
		ProcessingTime: time.Since(start),
		ErrorMessage:   err.Error(),
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		event.ErrorType = string(appErr.Type)
	}
	s.publish(ctx, event)
}

// translateAnalyzerError maps analyzer sentinels onto the application taxonomy
func translateAnalyzerError(err error) error {
	switch {
	case errors.Is(err, analyzer.ErrNoSkinDetected):
		return apperrors.NewNoSkinDetectedError(analyzer.ErrNoSkinDetected.Error(), err)
	case errors.Is(err, analyzer.ErrInvalidOptions):
		return apperrors.NewValidationError("invalid analysis options", err)
	case errors.Is(err, analyzer.ErrEmptyImage):
		return apperrors.NewDecodeError("image has no pixels", err)
	default:
		return asAppError(err, "analysis failed")
	}
}

// asAppError keeps AppErrors as they are and wraps anything else as internal
func asAppError(err error, message string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.NewTimeoutError(message, err)
	}
	return apperrors.NewInternalError(message, err)
}
