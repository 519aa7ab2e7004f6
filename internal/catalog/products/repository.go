package products

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparkbazaar/sparkbazaar/internal/catalog/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id string, product Product) error
	SetActive(ctx context.Context, id string, active bool) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectColumns = `p.id, p.name, p.description, p.content, p.image_url, p.original_price, p.discount_price, p.category_id, p.stock_quantity, p.is_active, p.created_at, COALESCE(c.name, '')`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.CategoryID != nil {
		argCount++
		where += ` AND p.category_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.CategoryID)
	}
	if filters.Search != "" {
		argCount++
		where += ` AND (p.name ILIKE $` + strconv.Itoa(argCount) + ` OR p.content ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.IsActive != nil {
		argCount++
		where += ` AND p.is_active = $` + strconv.Itoa(argCount)
		args = append(args, *filters.IsActive)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products p` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + selectColumns + ` FROM products p LEFT JOIN categories c ON p.category_id = c.id` + where
	query += ` ORDER BY ` + sortOrder(filters.SortBy)

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Product, error) {
	query := `SELECT ` + selectColumns + ` FROM products p LEFT JOIN categories c ON p.category_id = c.id WHERE p.id = $1`
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, shared.ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	query := `INSERT INTO products (name, description, content, image_url, original_price, discount_price, category_id, stock_quantity, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		product.Name, product.Description, product.Content, product.ImageURL,
		product.OriginalPrice, product.DiscountPrice, product.CategoryID,
		product.StockQuantity, product.IsActive, now,
	).Scan(&product.ID)
	if err != nil {
		return Product{}, err
	}
	product.CreatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, id string, product Product) error {
	query := `UPDATE products SET name = $1, description = $2, content = $3, image_url = $4, original_price = $5, discount_price = $6, category_id = $7, stock_quantity = $8 WHERE id = $9`
	tag, err := r.db.Exec(ctx, query,
		product.Name, product.Description, product.Content, product.ImageURL,
		product.OriginalPrice, product.DiscountPrice, product.CategoryID,
		product.StockQuantity, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetActive flips the soft-delete flag. Products are never removed so
// order items keep a valid reference.
func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Content, &p.ImageURL,
		&p.OriginalPrice, &p.DiscountPrice, &p.CategoryID, &p.StockQuantity,
		&p.IsActive, &p.CreatedAt, &p.CategoryName)
	return p, err
}

func sortOrder(sortBy string) string {
	switch sortBy {
	case shared.SortPrice:
		return "p.discount_price ASC"
	case shared.SortStock:
		return "p.stock_quantity ASC"
	case shared.SortName:
		return "p.name ASC"
	default:
		return "p.created_at DESC"
	}
}
