package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBody caps a single resource; descriptors and READMEs are small.
const maxBody = 8 << 20

var errTooLarge = errors.New("response body too large")

// HTTP fetches resources relative to a base URL.
type HTTP struct {
	base    *url.URL
	client  *http.Client
	maxBody int64
}

// NewHTTP creates an HTTP fetcher. A zero timeout defaults to 30s.
func NewHTTP(baseURL string, timeout time.Duration) (*HTTP, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("fetch: unsupported base url scheme %q", base.Scheme)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTP{
		base:    base,
		client:  &http.Client{Timeout: timeout},
		maxBody: maxBody,
	}, nil
}

// Fetch issues a GET for path. Any non-2xx status is an UnavailableError.
func (h *HTTP) Fetch(ctx context.Context, path string) ([]byte, error) {
	target := h.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, &UnavailableError{Path: path, Status: resp.StatusCode}
	}
	// One byte past the cap tells an oversized body from one that fits.
	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBody+1))
	if err != nil {
		return nil, &UnavailableError{Path: path, Status: resp.StatusCode, Err: err}
	}
	if int64(len(data)) > h.maxBody {
		return nil, &UnavailableError{Path: path, Status: resp.StatusCode,
			Err: fmt.Errorf("%w: over %d bytes", errTooLarge, h.maxBody)}
	}
	return data, nil
}
