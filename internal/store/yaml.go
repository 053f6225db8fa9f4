package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rgehrsitz/fiscalpro/internal/catalog"
	"github.com/rgehrsitz/fiscalpro/internal/config"
)

// YAMLStore keeps the catalog in a single YAML file
type YAMLStore struct {
	path   string
	parser *config.InputParser
}

// NewYAMLStore creates a store backed by the file at path
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path, parser: config.NewInputParser()}
}

// Path returns the backing file path
func (s *YAMLStore) Path() string {
	return s.path
}

// Load reads the catalog. A missing file yields the default catalog.
func (s *YAMLStore) Load(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := s.parser.LoadCatalog(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return catalog.Default(), nil
	}
	return c, err
}

// Save overwrites the file with the catalog. The file is replaced through a
// rename so readers never see a partial write.
func (s *YAMLStore) Save(ctx context.Context, c *catalog.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid catalog: %w", err)
	}
	data, err := s.parser.MarshalCatalog(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op
func (s *YAMLStore) Close() error { return nil }
