package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	apperrors "github.com/glamlens/glamlens/internal/errors"
)

const defaultFetchAttempts = 3

// HTTPImageFetcher downloads images over http(s), retrying transient failures
type HTTPImageFetcher struct {
	client   *http.Client
	decoder  *Decoder
	attempts int
	backoff  time.Duration
}

// HTTPOption customises an HTTPImageFetcher
type HTTPOption func(*HTTPImageFetcher)

// WithBackoff sets the base delay between attempts; attempt n waits n*backoff
func WithBackoff(d time.Duration) HTTPOption {
	return func(h *HTTPImageFetcher) {
		h.backoff = d
	}
}

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPImageFetcher) {
		h.client = c
	}
}

// NewHTTPImageFetcher creates an HTTP image fetcher
func NewHTTPImageFetcher(decoder *Decoder, timeout time.Duration, opts ...HTTPOption) *HTTPImageFetcher {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	h := &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		decoder:  decoder,
		attempts: defaultFetchAttempts,
		backoff:  time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// FetchImage downloads and decodes the image at imageURL. 4xx responses are
// not retried; 5xx responses and transport errors are.
func (h *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) (*DecodedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid URL", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, image/gif, image/bmp, */*")
	req.Header.Set("User-Agent", "GlamLens/1.0")

	var lastErr error
	var lastStatus int

	for attempt := 0; attempt < h.attempts; attempt++ {
		resp, err := h.client.Do(req)
		if err != nil {
			lastErr, lastStatus = err, 0
			if ctx.Err() != nil {
				break
			}
		} else if resp.StatusCode == http.StatusOK {
			defer resp.Body.Close()
			return h.decoder.Decode(resp.Body)
		} else {
			resp.Body.Close()
			lastStatus = resp.StatusCode
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				lastErr = fmt.Errorf("client error: status code %d", resp.StatusCode)
				break
			}
			lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
		}

		if attempt < h.attempts-1 {
			if !sleepCtx(ctx, time.Duration(attempt+1)*h.backoff) {
				break
			}
		}
	}

	return nil, h.classifyFetchError(ctx, lastErr, lastStatus)
}

func (h *HTTPImageFetcher) classifyFetchError(ctx context.Context, err error, status int) error {
	msg := fmt.Sprintf("failed to fetch image after %d attempts", h.attempts)
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.NewTimeoutError("image fetch timeout", err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return apperrors.NewTimeoutError("image fetch timeout", err)
	case status == http.StatusNotFound:
		return apperrors.NewNotFoundError("image not found", err)
	case err == nil:
		return apperrors.NewNetworkError(msg, errors.New("unknown error"))
	default:
		return apperrors.NewNetworkError(msg, err)
	}
}

// sleepCtx waits for d or until ctx is done; it reports whether the full
// delay elapsed
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
