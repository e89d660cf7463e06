package rentcast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"homematch-search/pkg/logger"
)

// Client manages RentCast API requests.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a new RentCast client.
func NewClient(apiKey, baseURL string, log *logger.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// get performs a GET request against path with the given query parameters,
// decoding the response body into out. Transient failures are retried with
// linear backoff; the caller's context bounds the whole exchange.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	requestURL := c.baseURL + path + "?" + params.Encode()
	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %v", err)
		}
		req.Header.Set("X-Api-Key", c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Errorf("RentCast request failed (attempt %d/%d): url=%s, error=%v", attempt, maxRetries, requestURL, err)
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d attempts: %v", maxRetries, err)
			}
			if err := sleepCtx(ctx, time.Duration(attempt)*time.Second); err != nil {
				return err
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			c.log.Errorf("RentCast response read failed (attempt %d/%d): url=%s, error=%v", attempt, maxRetries, requestURL, err)
			if attempt == maxRetries {
				return fmt.Errorf("failed to read response body after %d attempts: %v", maxRetries, err)
			}
			if err := sleepCtx(ctx, time.Duration(attempt)*time.Second); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			c.log.Errorf("RentCast request rejected (attempt %d/%d): url=%s, status=%s", attempt, maxRetries, requestURL, resp.Status)
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d attempts: %s", maxRetries, resp.Status)
			}
			if err := sleepCtx(ctx, time.Duration(attempt)*time.Second); err != nil {
				return err
			}
			continue
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %v", err)
		}
		return nil
	}

	return fmt.Errorf("request failed: max retries exceeded")
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
