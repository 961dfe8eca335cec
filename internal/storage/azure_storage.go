package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	apperrors "github.com/glamlens/glamlens/internal/errors"
	"github.com/glamlens/glamlens/pkg/validation"
)

// blobDownloader is the slice of *azblob.Client the fetcher needs
type blobDownloader interface {
	DownloadStream(ctx context.Context, containerName string, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
}

// AzureBlobFetcher reads images from Azure Blob Storage with shared-key auth
type AzureBlobFetcher struct {
	client  blobDownloader
	account string
	decoder *Decoder
}

// NewAzureBlobFetcher creates a fetcher bound to one storage account
func NewAzureBlobFetcher(accountName, accountKey string, decoder *Decoder) (*AzureBlobFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s%s/", accountName, validation.AzureBlobHostSuffix),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure blob client: %w", err)
	}

	return &AzureBlobFetcher{client: client, account: accountName, decoder: decoder}, nil
}

// ParseBlobURL splits https://<account>.blob.core.windows.net/<container>/<blob>
func ParseBlobURL(blobURL string) (account, container, blob string, err error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid blob URL: %w", err)
	}
	host := strings.ToLower(parsedURL.Hostname())
	account, ok := strings.CutSuffix(host, validation.AzureBlobHostSuffix)
	if !ok || account == "" {
		return "", "", "", fmt.Errorf("not an azure blob host: %s", parsedURL.Host)
	}

	container, blob, ok = strings.Cut(strings.TrimPrefix(parsedURL.Path, "/"), "/")
	if !ok || container == "" || blob == "" {
		return "", "", "", fmt.Errorf("blob URL must name a container and a blob: %s", blobURL)
	}
	return account, container, blob, nil
}

// FetchImage downloads a blob from the configured account
func (s *AzureBlobFetcher) FetchImage(ctx context.Context, blobURL string) (*DecodedImage, error) {
	account, container, blob, err := ParseBlobURL(blobURL)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid blob URL", err)
	}
	if !strings.EqualFold(account, s.account) {
		return nil, apperrors.NewValidationError("blob URL belongs to an unconfigured storage account", nil).
			WithDetails(account)
	}

	resp, err := s.client.DownloadStream(ctx, container, blob, nil)
	if err != nil {
		switch {
		case bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound):
			return nil, apperrors.NewNotFoundError("blob not found", err)
		case ctx.Err() != nil:
			return nil, apperrors.NewTimeoutError("blob download timeout", err)
		default:
			return nil, apperrors.NewNetworkError("blob download failed", err)
		}
	}
	defer resp.Body.Close()

	return s.decoder.Decode(resp.Body)
}
