package httpclient

import (
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"
	"errors"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// downloader fetches a single file in one GET.
type downloader struct {
	client *resty.Client
	log    zerolog.Logger
}

// NewDownloader wraps a resty client as a FileDownloader.
func NewDownloader(client *resty.Client, baseLogger *zerolog.Logger) ports.FileDownloader {
	return &downloader{
		client: client,
		log:    baseLogger.With().Str("component", "downloader").Logger(),
	}
}

// Download returns the response body. Non-2xx and empty bodies are FetchErrors.
// Platform file URLs embed the bot token, so only the host is ever reported.
func (d *downloader) Download(ctx context.Context, rawURL string) ([]byte, error) {
	data, err := GetBytes(ctx, d.client, rawURL, HostOnly(rawURL))
	if err != nil {
		return nil, err
	}
	d.log.Debug().Int("bytes", len(data)).Msg("File downloaded")
	return data, nil
}

// GetBytes performs one GET and validates the payload.
// display is the URL form used in errors.
func GetBytes(ctx context.Context, client *resty.Client, rawURL, display string) ([]byte, error) {
	resp, err := client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &domain.FetchError{URL: display, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &domain.FetchError{URL: display, StatusCode: resp.StatusCode(), Err: errors.New("unexpected status")}
	}
	body := resp.Body()
	if len(body) == 0 {
		return nil, &domain.FetchError{URL: display, StatusCode: resp.StatusCode(), Err: errors.New("empty body")}
	}
	return body, nil
}

// HostOnly reduces a URL to scheme://host.
func HostOnly(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "<invalid url>"
	}
	return u.Scheme + "://" + u.Host
}
