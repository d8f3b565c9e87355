package catalog

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/kakairsyad/Interior-market/internal/domain"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const productColumns = `id, name, price, image, images, category, subcategory, designer,
		description, materials, width, height, depth, in_stock, featured`

// SQLiteCatalog reads the catalog from a SQLite database.
type SQLiteCatalog struct {
	db *sql.DB
}

func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// ":memory:" databases are per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteCatalog{db: db}, nil
}

func (r *SQLiteCatalog) RunMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// Seed replaces the catalog contents with the given categories and products,
// keeping their order.
func (r *SQLiteCatalog) Seed(ctx context.Context, categories []domain.Category, products []domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM subcategories`, `DELETE FROM categories`, `DELETE FROM products`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
	}

	for i, c := range categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (name, description, image, position) VALUES ($1, $2, $3, $4)`,
			c.Name, c.Description, c.Image, i); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.Name, err)
		}
		for j, sc := range c.Subcategories {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO subcategories (category, name, description, position) VALUES ($1, $2, $3, $4)`,
				c.Name, sc.Name, sc.Description, j); err != nil {
				return fmt.Errorf("failed to insert subcategory %s: %w", sc.Name, err)
			}
		}
	}

	for i, p := range products {
		images, err := json.Marshal(p.Images)
		if err != nil {
			return fmt.Errorf("failed to marshal images: %w", err)
		}
		materials, err := json.Marshal(p.Materials)
		if err != nil {
			return fmt.Errorf("failed to marshal materials: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (`+productColumns+`, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			p.ID, p.Name, p.Price.String(), p.Image, string(images), p.Category, p.Subcategory, p.Designer,
			p.Description, string(materials), p.Dimensions.Width, p.Dimensions.Height, p.Dimensions.Depth,
			p.InStock, p.Featured, i)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY position`)
}

func (r *SQLiteCatalog) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	products, err := r.queryProducts(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		return domain.Product{}, err
	}
	if len(products) == 0 {
		return domain.Product{}, ErrProductNotFound
	}
	return products[0], nil
}

func (r *SQLiteCatalog) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE category = $1 COLLATE NOCASE
		ORDER BY position`, category)
}

func (r *SQLiteCatalog) GetProductsBySubcategory(ctx context.Context, subcategory string) ([]domain.Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE subcategory = $1 COLLATE NOCASE
		ORDER BY position`, subcategory)
}

func (r *SQLiteCatalog) GetFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products WHERE featured ORDER BY position`)
}

func (r *SQLiteCatalog) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, description, image FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.Description, &c.Image); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range categories {
		subs, err := r.subcategories(ctx, categories[i].Name)
		if err != nil {
			return nil, err
		}
		categories[i].Subcategories = subs
	}
	return categories, nil
}

func (r *SQLiteCatalog) subcategories(ctx context.Context, category string) ([]domain.Subcategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, description FROM subcategories WHERE category = $1 ORDER BY position`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer rows.Close()

	var subs []domain.Subcategory
	for rows.Next() {
		var sc domain.Subcategory
		if err := rows.Scan(&sc.Name, &sc.Description); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		subs = append(subs, sc)
	}
	return subs, rows.Err()
}

func (r *SQLiteCatalog) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var (
			p                 domain.Product
			price             string
			images, materials string
		)
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&price,
			&p.Image,
			&images,
			&p.Category,
			&p.Subcategory,
			&p.Designer,
			&p.Description,
			&materials,
			&p.Dimensions.Width,
			&p.Dimensions.Height,
			&p.Dimensions.Depth,
			&p.InStock,
			&p.Featured,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invalid price for product %s: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
			return nil, fmt.Errorf("invalid images for product %s: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(materials), &p.Materials); err != nil {
			return nil, fmt.Errorf("invalid materials for product %s: %w", p.ID, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *SQLiteCatalog) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteCatalog) Close() error {
	return r.db.Close()
}
