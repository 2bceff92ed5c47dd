package ports

import "context"

// ImageFetcher returns the bytes of a random image from a remote source.
type ImageFetcher interface {
	FetchRandomImage(ctx context.Context) ([]byte, error)
}

// FileDownloader downloads a single remote file.
type FileDownloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}
