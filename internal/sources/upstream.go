// Package sources talks to the public APIs that seed the knowledge graph:
// Google Maps Places text search and the Wikipedia query API.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/logger"
	"github.com/agenthands/travelmate/internal/metrics"
)

const maxBodyBytes = 8 << 20

// Options configure the HTTP behaviour shared by every upstream.
type Options struct {
	HTTPClient         *http.Client
	Timeout            time.Duration
	RequestsPerSecond  float64
	BreakerMaxFailures uint32
	Logger             *logger.Logger
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	Upstream string
	Code     int
	Status   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %s", e.Upstream, e.Status)
}

func (e *StatusError) Unwrap() error { return model.ErrUpstream }

// upstream is a rate limited, circuit broken JSON GET client.
type upstream struct {
	name    string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     *logger.Logger
}

func newUpstream(name string, opts Options) *upstream {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	maxFailures := opts.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	metrics.BreakerState.WithLabelValues(name).Set(0)
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", "upstream", name, "from", from.String(), "to", to.String())
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
	})

	return &upstream{
		name:    name,
		http:    client,
		limiter: rate.NewLimiter(limit, 1),
		breaker: breaker,
		log:     log,
	}
}

// getJSON fetches rawURL and decodes the body into out.
func (u *upstream) getJSON(ctx context.Context, rawURL string, out any) error {
	if err := u.limiter.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	body, err := u.breaker.Execute(func() ([]byte, error) {
		return u.fetch(ctx, rawURL)
	})
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.UpstreamDuration.WithLabelValues(u.name, status).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s: %w: %w", u.name, model.ErrUpstream, err)
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", u.name, err)
	}
	return nil
}

func (u *upstream) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := u.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", u.name, model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Upstream: u.name, Code: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
