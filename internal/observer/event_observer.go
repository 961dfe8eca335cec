package observer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AnalysisEvent represents an analysis lifecycle event
type AnalysisEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	Source         string                 `json:"source"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	Tone           string                 `json:"tone,omitempty"`
	ErrorType      string                 `json:"error_type,omitempty"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of analysis event
type EventType string

const (
	// AnalysisStarted when analysis begins
	AnalysisStarted EventType = "analysis_started"
	// ImageFetched when the image is decoded and ready for sampling
	ImageFetched EventType = "image_fetched"
	// ImageFetchFailed when the image cannot be fetched or decoded
	ImageFetchFailed EventType = "image_fetch_failed"
	// AnalysisCompleted when a tone was classified
	AnalysisCompleted EventType = "analysis_completed"
	// NoSkinDetected when the sampled window had no skin-like pixels
	NoSkinDetected EventType = "no_skin_detected"
	// AnalysisFailed for any other failure
	AnalysisFailed EventType = "analysis_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event AnalysisEvent)
}

// LoggingObserver logs analysis events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles analysis events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	fields := logrus.Fields{
		"event_type":         event.EventType,
		"source":             event.Source,
		"processing_time_ms": event.ProcessingTime.Milliseconds(),
		"success":            event.Success,
	}
	if event.Tone != "" {
		fields["tone"] = event.Tone
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
		fields["error_type"] = event.ErrorType
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	switch event.EventType {
	case AnalysisStarted:
		entry.Debug("Tone analysis started")
	case ImageFetched:
		entry.Debug("Image fetched successfully")
	case ImageFetchFailed:
		entry.Warn("Image fetch failed")
	case AnalysisCompleted:
		entry.Info("Tone analysis completed")
	case NoSkinDetected:
		entry.Info("No skin detected in sampled region")
	case AnalysisFailed:
		entry.Error("Tone analysis failed")
	default:
		entry.Info("Analysis event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// Stats is a snapshot of MetricsObserver counters
type Stats struct {
	TotalAnalyses      int64            `json:"total_analyses"`
	SuccessfulAnalyses int64            `json:"successful_analyses"`
	NoSkinDetected     int64            `json:"no_skin_detected"`
	FailedAnalyses     int64            `json:"failed_analyses"`
	FetchFailures      int64            `json:"fetch_failures"`
	AvgProcessingMs    float64          `json:"avg_processing_ms"`
	ToneCounts         map[string]int64 `json:"tone_counts"`
	TopTone            string           `json:"top_tone,omitempty"`
}

// MetricsObserver collects counters from analysis events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalAnalyses       int64
	successfulAnalyses  int64
	noSkin              int64
	failedAnalyses      int64
	fetchFailures       int64
	totalProcessingTime time.Duration
	toneCounts          map[string]int64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{toneCounts: make(map[string]int64)}
}

// OnEvent handles analysis events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case AnalysisStarted:
		o.totalAnalyses++
	case AnalysisCompleted:
		o.successfulAnalyses++
		o.totalProcessingTime += event.ProcessingTime
		if event.Tone != "" {
			o.toneCounts[event.Tone]++
		}
	case NoSkinDetected:
		o.noSkin++
	case ImageFetchFailed:
		o.fetchFailures++
		o.failedAnalyses++
	case AnalysisFailed:
		o.failedAnalyses++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetStats returns the current counters
func (o *MetricsObserver) GetStats() Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()

	stats := Stats{
		TotalAnalyses:      o.totalAnalyses,
		SuccessfulAnalyses: o.successfulAnalyses,
		NoSkinDetected:     o.noSkin,
		FailedAnalyses:     o.failedAnalyses,
		FetchFailures:      o.fetchFailures,
		ToneCounts:         make(map[string]int64, len(o.toneCounts)),
	}
	if o.successfulAnalyses > 0 {
		avg := o.totalProcessingTime / time.Duration(o.successfulAnalyses)
		stats.AvgProcessingMs = float64(avg.Microseconds()) / 1000
	}

	tones := make([]string, 0, len(o.toneCounts))
	for tone, n := range o.toneCounts {
		stats.ToneCounts[tone] = n
		tones = append(tones, tone)
	}
	// Ties resolve alphabetically
	sort.Strings(tones)
	var best int64
	for _, tone := range tones {
		if o.toneCounts[tone] > best {
			best, stats.TopTone = o.toneCounts[tone], tone
		}
	}
	return stats
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers delivers event to every observer in subscription order.
// Observers run on the caller's goroutine so counters are current when the
// request returns; a panicking observer is logged and skipped.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event AnalysisEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		notify(ctx, observer, event)
	}
}

func notify(ctx context.Context, obs Observer, event AnalysisEvent) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("observer", obs.GetObserverName()).
				WithField("panic", r).
				Error("Observer panicked while handling event")
		}
	}()
	obs.OnEvent(ctx, event)
}
