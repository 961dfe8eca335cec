package validation

import (
	"net/url"
	"strings"

	apperrors "github.com/glamlens/glamlens/internal/errors"
)

// AzureBlobHostSuffix identifies Azure Blob Storage endpoints
const AzureBlobHostSuffix = ".blob.core.windows.net"

// SourceKind tells which image source serves a URL
type SourceKind string

const (
	// SourceHTTP is a plain http(s) image URL
	SourceHTTP SourceKind = "http"
	// SourceAzureBlob is an https://<account>.blob.core.windows.net/<container>/<blob> URL
	SourceAzureBlob SourceKind = "azure"
)

// URLValidator checks image URLs before anything is fetched
type URLValidator struct {
	allowedSchemes []string
	// allowedHosts entries match exactly, or by suffix when they start with "*."
	allowedHosts []string
}

// NewURLValidator accepts any http(s) host
func NewURLValidator() *URLValidator {
	return &URLValidator{
		allowedSchemes: []string{"http", "https"},
		allowedHosts:   []string{},
	}
}

// NewURLValidatorWithOptions creates a URL validator with custom options
func NewURLValidatorWithOptions(schemes []string, hosts []string) *URLValidator {
	return &URLValidator{
		allowedSchemes: schemes,
		allowedHosts:   hosts,
	}
}

// ValidateImageURL validates imageURL and reports which source can fetch it
func (v *URLValidator) ValidateImageURL(imageURL string) (SourceKind, error) {
	if strings.TrimSpace(imageURL) == "" {
		return "", apperrors.NewValidationError("URL cannot be empty", nil)
	}

	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return "", apperrors.NewValidationError("invalid URL format", err)
	}

	if !v.isSchemeAllowed(parsedURL.Scheme) {
		return "", apperrors.NewValidationError("URL scheme not allowed", nil)
	}

	if parsedURL.Hostname() == "" {
		return "", apperrors.NewValidationError("URL must have a valid host", nil)
	}

	if parsedURL.User != nil {
		return "", apperrors.NewValidationError("URL must not embed credentials", nil)
	}

	if !v.isHostAllowed(parsedURL.Hostname()) {
		return "", apperrors.NewValidationError("URL host not allowed", nil)
	}

	if IsAzureBlobHost(parsedURL.Hostname()) {
		segments := strings.SplitN(strings.TrimPrefix(parsedURL.Path, "/"), "/", 2)
		if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
			return "", apperrors.NewValidationError("blob URL must name a container and a blob", nil)
		}
		return SourceAzureBlob, nil
	}

	return SourceHTTP, nil
}

// IsAzureBlobHost reports whether host is an Azure Blob Storage endpoint
func IsAzureBlobHost(host string) bool {
	return strings.HasSuffix(strings.ToLower(host), AzureBlobHostSuffix)
}

func (v *URLValidator) isSchemeAllowed(scheme string) bool {
	scheme = strings.ToLower(scheme)
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}

// isHostAllowed returns true if no host restrictions are set
func (v *URLValidator) isHostAllowed(host string) bool {
	if len(v.allowedHosts) == 0 {
		return true
	}
	host = strings.ToLower(host)
	for _, allowed := range v.allowedHosts {
		if suffix, ok := strings.CutPrefix(allowed, "*"); ok {
			if strings.HasSuffix(host, suffix) {
				return true
			}
			continue
		}
		if host == allowed {
			return true
		}
	}
	return false
}
