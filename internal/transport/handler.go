package transport

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glamlens/glamlens/internal/analyzer"
	"github.com/glamlens/glamlens/internal/config"
	apperrors "github.com/glamlens/glamlens/internal/errors"
	"github.com/glamlens/glamlens/internal/logger"
	"github.com/glamlens/glamlens/internal/observer"
	"github.com/glamlens/glamlens/internal/service"
	"github.com/glamlens/glamlens/pkg/models"
	"github.com/sirupsen/logrus"
)

const version = "1.0.0"

// NewHandler builds the HTTP API
func NewHandler(svc service.ToneAnalysisService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		requestLogger(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)

	v1 := r.Group("/api/v1")
	v1.POST("/analyze", analyzeUpload(svc, cfg))
	v1.POST("/analyze/url", analyzeURL(svc, cfg))
	v1.GET("/tones", listTones(svc))
	v1.GET("/tones/:tone", getTone(svc))
	v1.GET("/stats", stats(metrics))

	return r
}

func analyzeUpload(svc service.ToneAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		options, err := optionsFromQuery(c, cfg)
		if err != nil {
			respondError(c, err)
			return
		}

		header, err := c.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(c, apperrors.NewValidationError("request body too large", err))
				return
			}
			respondError(c, apperrors.NewValidationError("please select an image to analyze", err))
			return
		}
		if header.Size == 0 {
			respondError(c, apperrors.NewValidationError("please select an image to analyze", nil))
			return
		}

		file, err := header.Open()
		if err != nil {
			respondError(c, apperrors.NewInternalError("failed to read upload", err))
			return
		}
		defer file.Close()

		result, err := svc.AnalyzeUpload(ctx, file, options.WithSource(header.Filename))
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(toneKey, result.Tone)
		c.JSON(http.StatusOK, result)
	}
}

func analyzeURL(svc service.ToneAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.AnalyzeURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.NewValidationError("invalid request format", err))
			return
		}

		options := defaultOptions(cfg)
		if req.Strategy != "" {
			options.Strategy = req.Strategy
		}
		if req.Fraction != nil {
			options.Fraction = *req.Fraction
		}
		if req.Palette != nil {
			options.ExtractPalette = *req.Palette
		}

		result, err := svc.AnalyzeURL(ctx, req.URL, options)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(toneKey, result.Tone)
		c.JSON(http.StatusOK, result)
	}
}

func listTones(svc service.ToneAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ToneListResponse{Tones: svc.Tones()})
	}
}

func getTone(svc service.ToneAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.Recommendations(c.Param("tone"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func stats(metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.GetStats())
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func defaultOptions(cfg *config.Config) analyzer.AnalysisOptions {
	options := analyzer.DefaultOptions().
		WithStrategy(cfg.SamplingStrategy).
		WithFraction(cfg.SampleFraction)
	options.ExtractPalette = cfg.ExtractPalette
	options.PaletteSize = cfg.PaletteSize
	return options
}

// optionsFromQuery applies ?strategy=, ?fraction= and ?palette= on top of the
// configured defaults
func optionsFromQuery(c *gin.Context, cfg *config.Config) (analyzer.AnalysisOptions, error) {
	options := defaultOptions(cfg)
	if s := c.Query("strategy"); s != "" {
		options.Strategy = s
	}
	if f := c.Query("fraction"); f != "" {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return options, apperrors.NewValidationError("fraction must be a number", err)
		}
		options.Fraction = v
	}
	if p := c.Query("palette"); p != "" {
		v, err := strconv.ParseBool(p)
		if err != nil {
			return options, apperrors.NewValidationError("palette must be a boolean", err)
		}
		options.ExtractPalette = v
	}
	return options, nil
}

// Middleware and helper functions

const toneKey = "tone"

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":             c.Request.Method,
			"path":               c.Request.URL.Path,
			"status":             c.Writer.Status(),
			"ip":                 c.ClientIP(),
			"processing_time_ms": time.Since(start).Milliseconds(),
		}
		if tone, ok := c.Get(toneKey); ok {
			fields["tone"] = tone
		}
		logger.WithFields(fields).Info("Request handled")
	}
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			respondError(c, c.Errors.Last().Err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := determineStatusCode(err)

	resp := models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: err.Error(),
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp.Type = string(appErr.Type)
		resp.Message = appErr.Message
		resp.Details = appErr.Details
	}

	entry := logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	})
	if code >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	c.AbortWithStatusJSON(code, resp)
}
