// Package fetch loads JSON and text resources from the content tree,
// either over HTTP or straight from a storage.Provider.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/starford/folio/internal/apperr"
)

// Fetcher returns the raw bytes of a content resource. Paths are
// slash-separated and relative to the content root.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// UnavailableError reports a resource the transport could not deliver.
// Status is the HTTP status (0 when the request never completed).
type UnavailableError struct {
	Path   string
	Status int
	Err    error
}

func (e *UnavailableError) Error() string {
	switch {
	case e.Err != nil && e.Status == 0:
		return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("failed to load %s: %d %s: %v", e.Path, e.Status, http.StatusText(e.Status), e.Err)
	default:
		return fmt.Sprintf("failed to load %s: %d %s", e.Path, e.Status, http.StatusText(e.Status))
	}
}

// Is matches apperr.ErrUnavailable.
func (e *UnavailableError) Is(target error) bool {
	return target == apperr.ErrUnavailable
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// JSON fetches path and decodes it into v.
func JSON(ctx context.Context, f Fetcher, path string, v any) error {
	data, err := f.Fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("fetch: decode %s: %w", path, err)
	}
	return nil
}

// Text fetches path as a string.
func Text(ctx context.Context, f Fetcher, path string) (string, error) {
	data, err := f.Fetch(ctx, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
