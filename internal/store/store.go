// Package store persists catalog snapshots. Every Save overwrites the whole
// previous snapshot; there is no versioning or conflict detection.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fiscalpro/internal/catalog"
)

// Store loads and saves whole catalog snapshots
type Store interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
	Save(ctx context.Context, c *catalog.Catalog) error
	Close() error
}

// Kind names a store backend
type Kind string

const (
	KindYAML   Kind = "yaml"
	KindSQLite Kind = "sqlite"
)

// Open returns the store of the given kind rooted at path
func Open(kind Kind, path string) (Store, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case KindYAML, "":
		return NewYAMLStore(path), nil
	case KindSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown store %q (valid: yaml, sqlite)", kind)
	}
}
