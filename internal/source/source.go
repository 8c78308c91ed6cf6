// Package source reads import payloads from a local path or an http(s) URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"instinct/internal/config"
)

// ErrUnavailable is wrapped by every failure to obtain source bytes.
var ErrUnavailable = errors.New("source unavailable")

const defaultTimeout = 30 * time.Second

// Reader fetches import payloads.
type Reader struct {
	httpClient *http.Client
	userAgent  string
}

// Option configures a Reader.
type Option func(*Reader)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Reader) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header for URL fetches.
func WithUserAgent(agent string) Option {
	return func(r *Reader) {
		r.userAgent = strings.TrimSpace(agent)
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Reader) {
		if timeout > 0 {
			r.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New constructs a Reader.
func New(opts ...Option) *Reader {
	r := &Reader{httpClient: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsURL reports whether location is fetched over HTTP.
func IsURL(location string) bool {
	location = strings.TrimSpace(location)
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Name returns a short label for location: the file stem for paths and
// "web-import" for URLs.
func Name(location string) string {
	if IsURL(location) {
		return "web-import"
	}
	base := filepath.Base(strings.TrimSpace(location))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Read returns the full payload at location.
func (r *Reader) Read(ctx context.Context, location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", fmt.Errorf("%w: empty location", ErrUnavailable)
	}
	if IsURL(location) {
		return r.fetch(ctx, location)
	}
	return readFile(location)
}

func readFile(location string) (string, error) {
	path, err := config.ExpandPath(location)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: file not found: %s", ErrUnavailable, path)
		}
		return "", fmt.Errorf("%w: read %s: %v", ErrUnavailable, path, err)
	}
	return string(data), nil
}

func (r *Reader) fetch(ctx context.Context, location string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %v", ErrUnavailable, location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: fetch %s: status %d", ErrUnavailable, location, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response from %s: %v", ErrUnavailable, location, err)
	}
	return string(body), nil
}
