package catapi

import (
	"ESBot/internal/adapters/httpclient"
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"
	"errors"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// image is one entry of the search endpoint's JSON array.
type image struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// client implements ports.ImageFetcher against a thecatapi-compatible endpoint.
type client struct {
	rest   *resty.Client
	apiURL string
	log    zerolog.Logger
}

// NewClient creates a random image fetcher for apiURL.
func NewClient(rest *resty.Client, apiURL string, baseLogger *zerolog.Logger) ports.ImageFetcher {
	return &client{
		rest:   rest,
		apiURL: apiURL,
		log:    baseLogger.With().Str("component", "cat_api").Logger(),
	}
}

// FetchRandomImage asks the API for a random image and downloads it.
func (c *client) FetchRandomImage(ctx context.Context) ([]byte, error) {
	var images []image
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		ForceContentType("application/json").
		SetResult(&images).
		Get(c.apiURL)
	if err != nil {
		return nil, &domain.FetchError{URL: c.apiURL, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &domain.FetchError{URL: c.apiURL, StatusCode: resp.StatusCode(), Err: errors.New("unexpected status")}
	}
	if len(images) == 0 {
		return nil, &domain.FetchError{URL: c.apiURL, StatusCode: resp.StatusCode(), Err: errors.New("empty image list")}
	}

	picked := images[0]
	if picked.URL == "" {
		return nil, &domain.FetchError{URL: c.apiURL, StatusCode: resp.StatusCode(), Err: errors.New("image entry without url")}
	}
	c.log.Info().Str("image_id", picked.ID).Str("image_url", picked.URL).Msg("Random image picked")

	return httpclient.GetBytes(ctx, c.rest, picked.URL, picked.URL)
}
