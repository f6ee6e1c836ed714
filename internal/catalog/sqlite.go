package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteCatalog implements Service against a local SQLite database, which
// lets the storefront run standalone without the listing API.
type SQLiteCatalog struct {
	db *sql.DB
}

// OpenSQLiteCatalog opens (creating when necessary) the catalog database
// at path and ensures the schema exists.
func OpenSQLiteCatalog(ctx context.Context, path string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("catalog: open sqlite: %w", err)
	}
	c := &SQLiteCatalog{db: db}
	if err := c.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the underlying database handle.
func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}

func (c *SQLiteCatalog) ensureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS products (
	id               TEXT PRIMARY KEY,
	slug             TEXT NOT NULL UNIQUE,
	title            TEXT NOT NULL,
	fabric           TEXT NOT NULL,
	occasion         TEXT NOT NULL,
	price            INTEGER NOT NULL,
	compare_at_price INTEGER NOT NULL DEFAULT 0,
	rating           REAL NOT NULL DEFAULT 0,
	rating_count     INTEGER NOT NULL DEFAULT 0,
	in_stock         INTEGER NOT NULL DEFAULT 1,
	image            TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS product_colors (
	product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	color      TEXT NOT NULL,
	PRIMARY KEY (product_id, color)
);
CREATE TABLE IF NOT EXISTS product_sizes (
	product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	size       TEXT NOT NULL,
	PRIMARY KEY (product_id, size)
);
CREATE INDEX IF NOT EXISTS idx_products_fabric ON products(fabric);
CREATE INDEX IF NOT EXISTS idx_products_occasion ON products(occasion);
CREATE INDEX IF NOT EXISTS idx_products_price ON products(price);
`
	if _, err := c.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("catalog: ensure schema: %w", err)
	}
	return nil
}

// Empty reports whether the products table has no rows.
func (c *SQLiteCatalog) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return false, fmt.Errorf("catalog: count products: %w", err)
	}
	return n == 0, nil
}

// Seed inserts the given products, replacing rows with matching IDs.
func (c *SQLiteCatalog) Seed(ctx context.Context, products []Product) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog: begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, p := range products {
		_, err := tx.ExecContext(ctx, `
INSERT OR REPLACE INTO products
	(id, slug, title, fabric, occasion, price, compare_at_price, rating, rating_count, in_stock, image, description, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Slug, p.Title, p.Fabric, p.Occasion, p.Price, p.CompareAtPrice,
			p.Rating, p.RatingCount, boolToInt(p.InStock), p.Image, p.Description, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("catalog: seed product %s: %w", p.Slug, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_colors WHERE product_id = ?`, p.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_sizes WHERE product_id = ?`, p.ID); err != nil {
			return err
		}
		for _, color := range p.Colors {
			if _, err := tx.ExecContext(ctx, `INSERT INTO product_colors (product_id, color) VALUES (?, ?)`, p.ID, color); err != nil {
				return fmt.Errorf("catalog: seed color for %s: %w", p.Slug, err)
			}
		}
		for _, size := range p.Sizes {
			if _, err := tx.ExecContext(ctx, `INSERT INTO product_sizes (product_id, size) VALUES (?, ?)`, p.ID, size); err != nil {
				return fmt.Errorf("catalog: seed size for %s: %w", p.Slug, err)
			}
		}
	}
	return tx.Commit()
}

// List implements Service with dynamically assembled WHERE clauses and a
// sort-key safelist.
func (c *SQLiteCatalog) List(ctx context.Context, state FilterState) (ListResult, error) {
	state = state.normalize()

	where, args := buildWhere(state)

	var total int
	countQuery := `SELECT COUNT(*) FROM products p` + where
	if err := c.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return ListResult{}, fmt.Errorf("catalog: count listing: %w", err)
	}

	query := `
SELECT p.id, p.slug, p.title, p.fabric, p.occasion, p.price, p.compare_at_price,
       p.rating, p.rating_count, p.in_stock, p.image, p.description, p.created_at
FROM products p` + where + orderClause(state.Sort) + ` LIMIT ? OFFSET ?`
	args = append(args, state.Limit, (state.Page-1)*state.Limit)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return ListResult{}, fmt.Errorf("catalog: query listing: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return ListResult{}, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return ListResult{}, fmt.Errorf("catalog: iterate listing: %w", err)
	}

	if err := c.attachVariants(ctx, products); err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Products: products,
		Total:    total,
		Page:     state.Page,
		Limit:    state.Limit,
	}, nil
}

// Get implements Service.
func (c *SQLiteCatalog) Get(ctx context.Context, slug string) (Product, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	row := c.db.QueryRowContext(ctx, `
SELECT p.id, p.slug, p.title, p.fabric, p.occasion, p.price, p.compare_at_price,
       p.rating, p.rating_count, p.in_stock, p.image, p.description, p.created_at
FROM products p WHERE p.slug = ?`, slug)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, err
	}
	products := []Product{p}
	if err := c.attachVariants(ctx, products); err != nil {
		return Product{}, err
	}
	return products[0], nil
}

func buildWhere(state FilterState) (string, []any) {
	var clauses []string
	var args []any

	addSet := func(column string, values []string) {
		if len(values) == 0 {
			return
		}
		clauses = append(clauses, column+" IN ("+placeholders(len(values))+")")
		for _, v := range values {
			args = append(args, v)
		}
	}
	addSet("p.fabric", state.Fabric)
	addSet("p.occasion", state.Occasion)

	if len(state.Color) > 0 {
		clauses = append(clauses,
			"EXISTS (SELECT 1 FROM product_colors pc WHERE pc.product_id = p.id AND pc.color IN ("+placeholders(len(state.Color))+"))")
		for _, v := range state.Color {
			args = append(args, v)
		}
	}
	if len(state.Size) > 0 {
		clauses = append(clauses,
			"EXISTS (SELECT 1 FROM product_sizes ps WHERE ps.product_id = p.id AND ps.size IN ("+placeholders(len(state.Size))+"))")
		for _, v := range state.Size {
			args = append(args, v)
		}
	}
	if len(state.Availability) == 1 {
		if state.Availability[0] == AvailabilityInStock {
			clauses = append(clauses, "p.in_stock = 1")
		} else {
			clauses = append(clauses, "p.in_stock = 0")
		}
	}
	if state.MinPrice > 0 {
		clauses = append(clauses, "p.price >= ?")
		args = append(args, state.MinPrice)
	}
	if state.MaxPrice < PriceCeiling {
		clauses = append(clauses, "p.price <= ?")
		args = append(args, state.MaxPrice)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// orderClause maps the sort enum onto SQL. The switch doubles as the
// safelist; nothing user-supplied is interpolated.
func orderClause(by Sort) string {
	switch by {
	case SortPriceAsc:
		return " ORDER BY p.price ASC, p.slug ASC"
	case SortPriceDesc:
		return " ORDER BY p.price DESC, p.slug ASC"
	case SortPopular:
		return " ORDER BY p.rating_count DESC, p.slug ASC"
	case SortRating:
		return " ORDER BY p.rating DESC, p.slug ASC"
	default:
		return " ORDER BY p.created_at DESC, p.slug ASC"
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var inStock int
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Fabric, &p.Occasion, &p.Price,
		&p.CompareAtPrice, &p.Rating, &p.RatingCount, &inStock, &p.Image,
		&p.Description, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	p.InStock = inStock != 0
	return p, nil
}

func (c *SQLiteCatalog) attachVariants(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	index := make(map[string]*Product, len(products))
	ids := make([]any, 0, len(products))
	for i := range products {
		index[products[i].ID] = &products[i]
		ids = append(ids, products[i].ID)
	}

	colorRows, err := c.db.QueryContext(ctx,
		`SELECT product_id, color FROM product_colors WHERE product_id IN (`+placeholders(len(ids))+`)`, ids...)
	if err != nil {
		return fmt.Errorf("catalog: query colors: %w", err)
	}
	defer colorRows.Close()
	for colorRows.Next() {
		var id, color string
		if err := colorRows.Scan(&id, &color); err != nil {
			return err
		}
		if p, ok := index[id]; ok {
			p.Colors = append(p.Colors, color)
		}
	}
	if err := colorRows.Err(); err != nil {
		return err
	}

	sizeRows, err := c.db.QueryContext(ctx,
		`SELECT product_id, size FROM product_sizes WHERE product_id IN (`+placeholders(len(ids))+`)`, ids...)
	if err != nil {
		return fmt.Errorf("catalog: query sizes: %w", err)
	}
	defer sizeRows.Close()
	for sizeRows.Next() {
		var id, size string
		if err := sizeRows.Scan(&id, &size); err != nil {
			return err
		}
		if p, ok := index[id]; ok {
			p.Sizes = append(p.Sizes, size)
		}
	}
	if err := sizeRows.Err(); err != nil {
		return err
	}

	for i := range products {
		products[i].Colors = canonicalValues(FieldColor, products[i].Colors)
		products[i].Sizes = canonicalValues(FieldSize, products[i].Sizes)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
