package esi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/evetrade/internal/infrastructure/config"
)

const (
	pagesHeader = "X-Pages"

	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 4
	defaultBackoffBase = time.Second
)

// Client is a thin ESI HTTP client with rate limiting, retries and a
// circuit breaker. ESI paginates list endpoints via the X-Pages header.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	userAgent   string
	maxRetries  int
	backoffBase time.Duration
}

// NewClient creates a client from configuration
func NewClient(cfg *config.ESIConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit.Requests), cfg.RateLimit.Burst),
		breaker:     NewCircuitBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout, nil),
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
	}
}

// NewClientWithOptions creates a client with explicit settings (for tests)
func NewClientWithOptions(baseURL, userAgent string, maxRetries int, backoffBase time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: rate.NewLimiter(rate.Inf, 1),
		breaker:     NewCircuitBreaker(5, time.Minute, nil),
		baseURL:     baseURL,
		userAgent:   userAgent,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
	}
}

// get performs a GET request against path with the given query values,
// unmarshals the JSON body into result and returns the page count reported
// by the X-Pages header (1 if absent).
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) (int, error) {
	pages := 1
	err := c.breaker.Call(func() error {
		var callErr error
		pages, callErr = c.doGet(ctx, path, query, result)
		return callErr
	})
	return pages, err
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, result interface{}) (int, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return 0, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("network error: %w", err)
			if sleepErr := c.backoff(ctx, attempt); sleepErr != nil {
				return 0, sleepErr
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return 0, fmt.Errorf("failed to read response: %w", readErr)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			// ESI error-limits with 429 and throws transient 5xx under load
			lastErr = fmt.Errorf("esi error (status %d)", resp.StatusCode)
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, err := strconv.Atoi(retryAfter); err == nil {
					if sleepErr := c.sleep(ctx, time.Duration(seconds)*time.Second); sleepErr != nil {
						return 0, sleepErr
					}
					continue
				}
			}
			if sleepErr := c.backoff(ctx, attempt); sleepErr != nil {
				return 0, sleepErr
			}
			continue

		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return 0, fmt.Errorf("esi error (status %d): %s", resp.StatusCode, string(body))
		}

		pages := 1
		if header := resp.Header.Get(pagesHeader); header != "" {
			if parsed, err := strconv.Atoi(header); err == nil && parsed > 0 {
				pages = parsed
			}
		}

		if result != nil {
			if err := json.Unmarshal(body, result); err != nil {
				return 0, fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}
		return pages, nil
	}

	return 0, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// backoff sleeps for an exponentially growing, jittered delay. The last
// attempt returns the accumulated error from the caller instead of sleeping.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	if attempt >= c.maxRetries {
		return nil
	}
	return c.sleep(ctx, addJitter(c.backoffBase*time.Duration(1<<attempt)))
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// addJitter returns a duration between 50% and 150% of the original value
// to avoid thundering herd on retry
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}
