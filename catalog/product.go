package catalog

import (
	"context"
	"errors"
	"slices"
	"sort"
)

// ErrNotFound is returned when a product id is not present in a catalog.
var ErrNotFound = errors.New("catalog: product not found")

// Specs holds the free-form product specification strings shown on the
// product page. Dimensions use the "W x D x H cm" form.
type Specs struct {
	Dimensions string `json:"dimensions"`
	Material   string `json:"material"`
	Color      string `json:"color"`
	Weight     string `json:"weight"`
}

// Product is a purchasable furniture definition.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	ModelURL    string   `json:"modelUrl"`
	Specs       Specs    `json:"specs"`
	InStock     bool     `json:"inStock"`
	Featured    bool     `json:"featured"`
}

// Clone returns a deep copy of p.
func (p Product) Clone() Product {
	p.Images = slices.Clone(p.Images)
	return p
}

// Provider supplies catalog products.
type Provider interface {
	Products(ctx context.Context) ([]Product, error)
	Product(ctx context.Context, id int) (Product, error)
}

// Categories returns the distinct, sorted category names of products.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	var out []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// InCategory filters products to the given category. An empty category or
// "all" returns every product.
func InCategory(products []Product, category string) []Product {
	if category == "" || category == "all" {
		return products
	}
	var out []Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
