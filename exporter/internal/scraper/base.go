package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/config"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/device"
)

// FetchError reports a failed page fetch: connection failure, timeout or a
// non-2xx response. It wraps the underlying cause.
type FetchError struct {
	Page device.Page
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Page, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves pages from one meter. It is safe for concurrent use;
// overlapping scrapes share the client and nothing else.
type Fetcher struct {
	base   string
	client *http.Client
	now    func() time.Time // injectable for deterministic tests
}

// New returns a Fetcher for the configured device.
// It builds the HTTP client once and reuses it across scrape calls.
func New(dev config.DeviceConfig) *Fetcher {
	return NewWithClient(dev.Address, buildHTTPClient(dev))
}

// NewWithClient returns a Fetcher that reads from address using client.
func NewWithClient(address string, client *http.Client) *Fetcher {
	return &Fetcher{
		base:   baseURL(address),
		client: client,
		now:    time.Now,
	}
}

// buildHTTPClient constructs the http.Client used for device requests.
// A zero timeout leaves the transport defaults in charge.
func buildHTTPClient(dev config.DeviceConfig) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   dev.Timeout,
	}
}

// baseURL turns a configured address into a URL prefix without a trailing slash.
func baseURL(address string) string {
	address = strings.TrimRight(strings.TrimSpace(address), "/")
	if strings.Contains(address, "://") {
		return address
	}
	return "http://" + address
}

// URL returns the absolute URL of page on this device.
func (f *Fetcher) URL(page device.Page) string {
	return f.base + "/" + page.Path()
}

// Fetch performs a GET for page and returns its body unchanged.
// Any failure is returned as a *FetchError; there is no retry.
func (f *Fetcher) Fetch(ctx context.Context, page device.Page) (device.Document, error) {
	url := f.URL(page)
	if page.Path() == "" {
		return device.Document{}, &FetchError{Page: page, URL: url, Err: fmt.Errorf("unknown page")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return device.Document{}, &FetchError{Page: page, URL: url, Err: fmt.Errorf("build request: %w", err)}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return device.Document{}, &FetchError{Page: page, URL: url, Err: fmt.Errorf("http get: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return device.Document{}, &FetchError{Page: page, URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return device.Document{}, &FetchError{Page: page, URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	return device.Document{
		Page:      page,
		FetchedAt: f.now().UTC(),
		Body:      string(body),
	}, nil
}
