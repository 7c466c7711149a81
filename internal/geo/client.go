// Package geo talks to the external geocoding (Nominatim) and routing (OSRM)
// services. Their responses are stored on trips verbatim and never
// recomputed locally.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultRetries   = 3
	initialBackoff   = 1 * time.Second
	acceptJSONHeader = "application/json"
)

// StatusError reports a non-2xx response from a geo service.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geo service returned HTTP %d", e.Status)
}

// retryable reports whether a failed attempt is worth repeating. Client
// errors (4xx) are not; the request will not get better.
func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status >= 500
	}
	return true
}

// getJSON performs a GET and decodes the JSON body into out.
func getJSON(ctx context.Context, client *http.Client, url, userAgent string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptJSONHeader)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Status: resp.StatusCode}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// getJSONWithRetry is getJSON with exponential backoff. 4xx responses fail
// immediately.
func getJSONWithRetry(ctx context.Context, client *http.Client, url, userAgent string, out any) error {
	var lastErr error

	for attempt := 0; attempt <= defaultRetries; attempt++ {
		if attempt > 0 {
			backoff := initialBackoff << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = getJSON(ctx, client, url, userAgent, out)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
