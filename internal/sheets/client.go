// Package sheets implements the store collaborator clients: fetching the
// CSV snapshot export and posting update instructions to the sheet's update
// endpoint. Retry and backoff live here, at the transport boundary; the
// reconciliation engine never retries.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sheetsub/internal/config"
	"sheetsub/internal/core"
	"sheetsub/internal/logging"
)

// maxSnapshotBytes caps how much snapshot text a single fetch will read.
// The sheet holds at most a few thousand rows; anything near this limit
// means the export URL is misconfigured.
const maxSnapshotBytes = 16 << 20

// Client talks to the spreadsheet collaborator over HTTP.
type Client struct {
	httpClient  *http.Client
	snapshotURL string
	updateURL   string
	attempts    int
	backoff     time.Duration
}

// NewClient builds a Client from the sheets configuration.
func NewClient(cfg config.SheetsConfig) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.FetchTimeout},
		snapshotURL: cfg.SnapshotURL,
		updateURL:   cfg.UpdateURL,
		attempts:    cfg.RetryAttempts,
		backoff:     cfg.RetryBackoff,
	}
}

// FetchSnapshot retrieves the current CSV export of the backing sheet.
// Transient failures (network errors, 5xx) are retried with exponential
// backoff up to the configured attempt count.
func (c *Client) FetchSnapshot(ctx context.Context) (string, error) {
	var text string

	err := c.withRetry(ctx, "fetch snapshot", func() (retryable bool, err error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.snapshotURL, nil)
		if err != nil {
			return false, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return true, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode >= 500, fmt.Errorf("snapshot endpoint returned %s", resp.Status)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))
		if err != nil {
			return true, fmt.Errorf("read snapshot body: %w", err)
		}

		text = string(body)
		return false, nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// PostUpdate hands an update instruction to the sheet's update endpoint.
// The endpoint is expected to re-validate the instruction's snapshot digest
// before applying; a non-2xx response is an error.
func (c *Client) PostUpdate(ctx context.Context, instr core.UpdateInstruction) error {
	payload, err := json.Marshal(instr)
	if err != nil {
		return fmt.Errorf("encode update instruction: %w", err)
	}

	return c.withRetry(ctx, "post update", func() (retryable bool, err error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.updateURL, bytes.NewReader(payload))
		if err != nil {
			return false, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return true, err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return resp.StatusCode >= 500, fmt.Errorf("update endpoint returned %s", resp.Status)
		}
		return false, nil
	})
}

// withRetry runs fn up to the configured attempt count, sleeping with
// exponential backoff between attempts. fn reports whether its failure is
// worth retrying; context cancellation always stops the loop.
func (c *Client) withRetry(ctx context.Context, op string, fn func() (retryable bool, err error)) error {
	var lastErr error
	delay := c.backoff

	for attempt := 1; attempt <= c.attempts; attempt++ {
		retryable, err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable || attempt == c.attempts {
			break
		}

		logging.FromContext(ctx).Warn("sheets call failed, retrying",
			"op", op,
			"attempt", attempt,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("%s: %w", op, lastErr)
}
