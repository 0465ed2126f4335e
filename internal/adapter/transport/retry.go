// Package transport wraps outbound HTTP calls with retry on transient
// failures, so the ledger clients survive rate limits and flaky upstreams.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/iho/splitsync/internal/domain"
)

// Retrier executes HTTP calls with exponential backoff on retryable results.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// NewRetrier creates a retrier with default settings.
func NewRetrier(logger zerolog.Logger) *Retrier {
	return &Retrier{
		maxRetries:      3,
		initialInterval: 200 * time.Millisecond,
		maxInterval:     2 * time.Second,
		maxElapsedTime:  20 * time.Second,
		logger:          logger,
	}
}

// Do executes fn until it yields a non-retryable result. Network errors, 429
// and 5xx responses are retried; the body of a retried response is drained
// and closed before the next attempt. The returned error wraps
// domain.ErrTransport.
func (r *Retrier) Do(ctx context.Context, fn func() (*http.Response, error)) (*http.Response, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	var resp *http.Response
	retryCount := 0

	retryable := func(err error) error {
		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}
		r.logger.Warn().Err(err).Int("retry", retryCount).Msg("retrying ledger request")
		return err
	}

	err := backoff.Retry(func() error {
		var err error
		resp, err = fn()
		if err != nil {
			return retryable(fmt.Errorf("%w: %v", domain.ErrTransport, err))
		}

		if isRetryableStatus(resp.StatusCode) {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			return retryable(fmt.Errorf("%w: status %d", domain.ErrTransport, resp.StatusCode))
		}

		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		if !errors.Is(err, domain.ErrTransport) {
			err = fmt.Errorf("%w: %v", domain.ErrTransport, err)
		}
		return nil, err
	}

	return resp, nil
}

// isRetryableStatus reports whether a response status warrants a retry.
// Non-5xx client errors are permanent.
func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
