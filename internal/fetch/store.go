package fetch

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/starford/folio/internal/storage"
)

// Store fetches resources from a storage.Provider, reporting failures the
// same way the HTTP fetcher does so callers need not care which is used.
type Store struct {
	provider storage.Provider
}

// NewStore wraps a provider.
func NewStore(p storage.Provider) *Store {
	return &Store{provider: p}
}

// Fetch reads path from the provider.
func (s *Store) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}
	data, err := s.provider.Read(path)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		return nil, &UnavailableError{Path: path, Status: status, Err: err}
	}
	return data, nil
}
