package categories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparkbazaar/sparkbazaar/internal/catalog/shared"
	"github.com/sparkbazaar/sparkbazaar/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id string) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, id string, category Category) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	query := `SELECT c.id, c.name, c.description, c.image_url, c.display_order, c.created_at, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name, c.description, c.image_url, c.display_order, c.created_at
		ORDER BY c.display_order ASC, c.name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.DisplayOrder, &c.CreatedAt, &c.ProductCount); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Category, error) {
	var c Category
	err := r.db.QueryRow(ctx, `SELECT id, name, description, image_url, display_order, created_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.DisplayOrder, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, shared.ErrNotFound
		}
		return Category{}, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, category Category) (Category, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (name, description, image_url, display_order, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		category.Name, category.Description, category.ImageURL, category.DisplayOrder, now,
	).Scan(&category.ID)
	if err != nil {
		return Category{}, err
	}
	category.CreatedAt = now
	return category, nil
}

func (r *repository) Update(ctx context.Context, id string, category Category) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $1, description = $2, image_url = $3, display_order = $4 WHERE id = $5`,
		category.Name, category.Description, category.ImageURL, category.DisplayOrder, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a category and detaches its products in one
// transaction so no product ends up pointing at a missing category.
func (r *repository) Delete(ctx context.Context, id string) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE products SET category_id = NULL WHERE category_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
