// Package apperr holds the sentinel errors shared across folio packages.
package apperr

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("resource unavailable")
	ErrDuplicateID = errors.New("duplicate project id")
	ErrNoCatalog   = errors.New("no category could be loaded")
)
