package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id          INTEGER PRIMARY KEY,
    name        TEXT    NOT NULL,
    category    TEXT    NOT NULL DEFAULT '',
    price       REAL    NOT NULL DEFAULT 0,
    description TEXT    NOT NULL DEFAULT '',
    images      TEXT    NOT NULL DEFAULT '[]',
    model_url   TEXT    NOT NULL DEFAULT '',
    dimensions  TEXT    NOT NULL DEFAULT '',
    material    TEXT    NOT NULL DEFAULT '',
    color       TEXT    NOT NULL DEFAULT '',
    weight      TEXT    NOT NULL DEFAULT '',
    in_stock    INTEGER NOT NULL DEFAULT 1,
    featured    INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`

const selectColumns = `id, name, category, price, description, images, model_url,
       dimensions, material, color, weight, in_stock, featured`

// SQLiteProvider is a Provider backed by a SQLite database.
type SQLiteProvider struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite catalog at path.
// Call Migrate before the first query on a fresh database.
func OpenSQLite(path string) (*SQLiteProvider, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir catalog dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}
	return &SQLiteProvider{db: db}, nil
}

// NewSQLite wraps an already opened database handle.
func NewSQLite(db *sql.DB) *SQLiteProvider {
	return &SQLiteProvider{db: db}
}

// Close closes the database.
func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}

// Migrate creates the products table if it does not exist.
func (p *SQLiteProvider) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply catalog schema: %w", err)
	}
	return nil
}

// Seed inserts or replaces the given products in a single transaction.
func (p *SQLiteProvider) Seed(ctx context.Context, products []Product) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT OR REPLACE INTO products (id, name, category, price, description, images, model_url,
                                         dimensions, material, color, weight, in_stock, featured)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	defer stmt.Close()

	for _, pr := range products {
		images, err := json.Marshal(imagesOrEmpty(pr.Images))
		if err != nil {
			return fmt.Errorf("seed product %d: %w", pr.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			pr.ID, pr.Name, pr.Category, pr.Price, pr.Description, string(images), pr.ModelURL,
			pr.Specs.Dimensions, pr.Specs.Material, pr.Specs.Color, pr.Specs.Weight,
			pr.InStock, pr.Featured,
		); err != nil {
			return fmt.Errorf("seed product %d: %w", pr.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

// Count returns the number of products in the database.
func (p *SQLiteProvider) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Products returns all products ordered by id.
func (p *SQLiteProvider) Products(ctx context.Context) ([]Product, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		pr, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return out, nil
}

// Product returns the product with the given id.
func (p *SQLiteProvider) Product(ctx context.Context, id int) (Product, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM products WHERE id = ?`, id)
	pr, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return pr, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(r rowScanner) (Product, error) {
	var (
		pr     Product
		images string
	)
	err := r.Scan(&pr.ID, &pr.Name, &pr.Category, &pr.Price, &pr.Description, &images, &pr.ModelURL,
		&pr.Specs.Dimensions, &pr.Specs.Material, &pr.Specs.Color, &pr.Specs.Weight,
		&pr.InStock, &pr.Featured)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, err
		}
		return Product{}, fmt.Errorf("scan product: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &pr.Images); err != nil {
		return Product{}, fmt.Errorf("product %d images: %w", pr.ID, err)
	}
	return pr, nil
}

func imagesOrEmpty(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
