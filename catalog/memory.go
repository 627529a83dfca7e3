package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed default.json
var defaultCatalog []byte

// Memory is an in-memory Provider. Products keep their insertion order.
type Memory struct {
	products []Product
	byID     map[int]int
}

// NewMemory creates a Memory provider holding copies of products.
// Later duplicates of an id replace earlier ones.
func NewMemory(products ...Product) *Memory {
	m := &Memory{byID: make(map[int]int, len(products))}
	for _, p := range products {
		if i, ok := m.byID[p.ID]; ok {
			m.products[i] = p.Clone()
			continue
		}
		m.byID[p.ID] = len(m.products)
		m.products = append(m.products, p.Clone())
	}
	return m
}

// Products returns copies of all products.
func (m *Memory) Products(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Product, len(m.products))
	for i, p := range m.products {
		out[i] = p.Clone()
	}
	return out, nil
}

// Product returns a copy of the product with the given id.
func (m *Memory) Product(ctx context.Context, id int) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	i, ok := m.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return m.products[i].Clone(), nil
}

// LoadJSON parses a JSON array of products into a Memory provider.
func LoadJSON(data []byte) (*Memory, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewMemory(products...), nil
}

// Default returns the built-in furniture catalog.
func Default() *Memory {
	m, err := LoadJSON(defaultCatalog)
	if err != nil {
		panic("catalog: embedded default catalog is invalid: " + err.Error())
	}
	return m
}

// Open loads a catalog from path. Files ending in .db, .sqlite or .sqlite3
// are opened as SQLite databases; anything else is parsed as JSON. An empty
// path returns the built-in catalog. The returned close function releases
// the underlying resource and is never nil.
func Open(ctx context.Context, path string) (Provider, func() error, error) {
	noop := func() error { return nil }
	if path == "" {
		return Default(), noop, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		p, err := OpenSQLite(path)
		if err != nil {
			return nil, noop, err
		}
		if err := p.Migrate(ctx); err != nil {
			_ = p.Close()
			return nil, noop, err
		}
		return p, p.Close, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, noop, fmt.Errorf("read catalog: %w", err)
	}
	m, err := LoadJSON(data)
	if err != nil {
		return nil, noop, err
	}
	return m, noop, nil
}
