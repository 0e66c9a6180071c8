// Package removebg calls the remove.bg background-removal API with an
// ordered chain of API keys, falling back to the next key on any failure
// and degrading to a pass-through when the chain is exhausted.
package removebg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.remove.bg/v1.0/removebg"

// quotaCode is the error code remove.bg returns when a key has run out of
// free credits; it is worth distinguishing in logs from a bad key.
const quotaCode = "insufficient_credits"

// Result is the outcome of a removal attempt. Skipped means every key
// failed and Data is the caller's original bytes, so no alpha transparency
// was introduced.
type Result struct {
	Data    []byte
	Skipped bool
}

// Client handles remove.bg API interactions
type Client struct {
	httpClient *http.Client
	endpoint   string
	keys       []string
	logger     *slog.Logger
}

// New creates a new remove.bg client trying the given keys in order.
func New(keys []string, logger *slog.Logger) *Client {
	return NewWithClient(&http.Client{Timeout: 30 * time.Second}, defaultEndpoint, keys, logger)
}

// NewWithClient creates a client with an existing HTTP client and endpoint
// (for testing).
func NewWithClient(httpClient *http.Client, endpoint string, keys []string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		keys:       keys,
		logger:     logger,
	}
}

// Remove sends the image to the background-removal service with each key in
// order and returns the first successful response body. Exhausting the key
// chain is not an error: the original image comes back marked Skipped so
// the pipeline continues without a mask. The only error returned is a
// context cancellation.
func (c *Client) Remove(ctx context.Context, img []byte) (*Result, error) {
	for i, key := range c.keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		processed, err := c.attempt(ctx, key, img)
		if err != nil {
			c.logger.Warn("background removal attempt failed",
				slog.Int("key_index", i),
				slog.String("reason", err.Error()),
			)
			continue
		}

		c.logger.Info("background removed", slog.Int("key_index", i))
		return &Result{Data: processed}, nil
	}

	c.logger.Warn("background removal skipped, all keys exhausted",
		slog.Int("keys_tried", len(c.keys)),
	)
	return &Result{Data: img, Skipped: true}, nil
}

// attempt issues one request with one key.
func (c *Client) attempt(ctx context.Context, key string, img []byte) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("image_file", "image.png")
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(img); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if err := mw.WriteField("size", "auto"); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Api-Key", key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remove.bg request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("remove.bg %s: %s", resp.Status, failureReason(respBody))
	}

	processed, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return processed, nil
}

// failureReason extracts a human-readable reason from a remove.bg error
// body, flagging quota exhaustion explicitly.
func failureReason(body []byte) string {
	var parsed struct {
		Errors []struct {
			Title string `json:"title"`
			Code  string `json:"code"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Errors) == 0 {
		return strings.TrimSpace(string(body))
	}

	e := parsed.Errors[0]
	if e.Code == quotaCode {
		return fmt.Sprintf("quota exceeded: %s", e.Title)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Title)
	}
	return e.Title
}
