// Package storage gives read access to the local content tree that
// `serve` publishes and `browse` reads when no base URL is configured.
package storage

// Provider reads content files by slash-separated path relative to the
// content root. Nothing in folio writes through it.
type Provider interface {
	// Read returns the raw bytes of the file at path. A missing file
	// yields an error wrapping fs.ErrNotExist.
	Read(path string) ([]byte, error)
	// Root returns the absolute content root.
	Root() string
}
