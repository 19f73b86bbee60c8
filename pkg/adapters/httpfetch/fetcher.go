// Package httpfetch implements ports.Fetcher against a real HTTP backend.
// It degrades gracefully: any transport, status or decoding failure is logged
// and rendered as an empty record list, so a flaky backend produces an empty
// dynamic screen rather than a user-facing error.
package httpfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"menuflow/internal/logging"
)

// Fetcher calls JSON endpoints and decodes the response into record lists.
type Fetcher struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

type Option func(*Fetcher)

// WithClient replaces the underlying HTTP client.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithLogger configures a logger for degraded fetches.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher. Relative urls passed to Call are resolved against
// baseURL; absolute urls are used as-is.
func New(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Call fetches url and decodes a JSON array of objects. A single JSON object
// is accepted and wrapped as a one-element list. Failures return an empty
// slice, never an error.
func (f *Fetcher) Call(ctx context.Context, url, method string) ([]map[string]any, error) {
	if method == "" {
		method = http.MethodGet
	}
	full := f.resolve(url)

	req, err := http.NewRequestWithContext(ctx, method, full, nil)
	if err != nil {
		f.degraded(full, method, err)
		return []map[string]any{}, nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.degraded(full, method, err)
		return []map[string]any{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		f.degraded(full, method, fmt.Errorf("unexpected status %d", resp.StatusCode))
		return []map[string]any{}, nil
	}

	records, err := decodeRecords(resp.Body)
	if err != nil {
		f.degraded(full, method, err)
		return []map[string]any{}, nil
	}
	return records, nil
}

func (f *Fetcher) resolve(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return f.baseURL + "/" + strings.TrimLeft(url, "/")
}

func (f *Fetcher) degraded(url, method string, err error) {
	f.logger.Warn("data fetch degraded to empty result",
		"url", url,
		"method", method,
		"err", err,
	)
}

func decodeRecords(r io.Reader) ([]map[string]any, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var single map[string]any
	if err := json.Unmarshal(body, &single); err == nil {
		return []map[string]any{single}, nil
	}
	return nil, fmt.Errorf("response is neither a JSON array nor an object")
}
