package repository

import "errors"

var (
	// ErrLocalFilesDisabled is returned when a file path is given to a repository
	// that only serves remote images
	ErrLocalFilesDisabled = errors.New("local file sources are disabled")

	// ErrNoFetcher indicates the repository was built without a fetcher for a source kind
	ErrNoFetcher = errors.New("no fetcher configured for source")
)
