package httpclient

import (
	"ESBot/internal/shared/config"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// New creates a resty client for one external service.
// Calls are made exactly once (no retries); a circuit breaker fails fast
// while the service keeps returning transport errors or 5xx.
func New(serviceName string, timeout time.Duration, cfg config.HTTPConfig, baseLogger *zerolog.Logger) *resty.Client {
	log := baseLogger.With().Str("component", "http_client").Str("service", serviceName).Logger()

	settings := gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: cfg.CBMaxRequests,
		Interval:    cfg.CBInterval,
		Timeout:     cfg.CBOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.CBMinimumRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.CBFailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		},
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetTransport(&breakerTransport{
		breaker: gobreaker.NewCircuitBreaker(settings),
		next:    http.DefaultTransport,
		log:     log,
	})

	return client
}

// errServerFailure marks a 5xx response inside the breaker.
var errServerFailure = errors.New("server failure")

// breakerTransport routes every round trip through the circuit breaker.
// 5xx responses count as failures but are still handed back to the caller.
type breakerTransport struct {
	breaker *gobreaker.CircuitBreaker
	next    http.RoundTripper
	log     zerolog.Logger
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var serverResp *http.Response

	result, err := t.breaker.Execute(func() (interface{}, error) {
		resp, err := t.next.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			serverResp = resp
			return nil, fmt.Errorf("%w: status %d", errServerFailure, resp.StatusCode)
		}
		return resp, nil
	})

	if err != nil {
		if serverResp != nil {
			return serverResp, nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			t.log.Warn().Str("host", req.URL.Host).Msg("Circuit breaker rejected request")
		}
		return nil, err
	}

	return result.(*http.Response), nil
}
