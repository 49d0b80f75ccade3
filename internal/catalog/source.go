package catalog

import (
	"context"
	"io"
)

// MaxSize bounds the size of a catalog document.
const MaxSize = 4 << 20

// Source is somewhere a catalog can be loaded from.
type Source interface {
	// Load fetches, parses and validates the catalog.
	Load(ctx context.Context) (*Catalog, error)

	// Watch calls fn after every change to the catalog until ctx is done,
	// with either the new catalog or the error that loading it produced.
	Watch(ctx context.Context, fn func(*Catalog, error)) error

	String() string
}

// readAll reads at most MaxSize bytes from r.
func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxSize {
		return nil, io.ErrShortBuffer
	}
	return data, nil
}
