package orders

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparkbazaar/sparkbazaar/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, filters Filters) ([]Order, int, error)
	ListByEmail(ctx context.Context, email string) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
	Revenue(ctx context.Context) (float64, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context, filters Filters) ([]Order, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Status != "" {
		argCount++
		where += ` AND o.status = $` + strconv.Itoa(argCount)
		args = append(args, string(filters.Status))
	}
	if filters.Search != "" {
		argCount++
		where += ` AND (c.name ILIKE $` + strconv.Itoa(argCount) +
			` OR c.email ILIKE $` + strconv.Itoa(argCount) +
			` OR o.id::text ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM orders o JOIN customers c ON c.id = o.customer_id` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT o.id, o.customer_id, o.status, o.total_amount, o.created_at, c.name, c.email, c.phone, c.address
		FROM orders o
		JOIN customers c ON c.id = o.customer_id` + where + `
		ORDER BY o.created_at DESC`

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

	var list []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalAmount, &o.CreatedAt,
			&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress); err != nil {
			return nil, 0, err
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// ListByEmail returns a customer's orders for the storefront order
// history page, newest first.
func (r *repository) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT o.id, o.customer_id, o.status, o.total_amount, o.created_at, c.name, c.email, c.phone, c.address
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE lower(c.email) = lower($1)
		ORDER BY o.created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalAmount, &o.CreatedAt,
			&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress); err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.QueryRow(ctx,
		`SELECT o.id, o.customer_id, o.status, o.total_amount, o.created_at, c.name, c.email, c.phone, c.address
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1`, id).
		Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalAmount, &o.CreatedAt,
			&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, httpx.ErrNotFound
		}
		return Order{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, product_id, product_name, quantity, unit_price, total_price
		FROM order_items WHERE order_id = $1 ORDER BY product_name ASC`, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return Order{}, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Revenue sums order totals, leaving out cancelled orders.
func (r *repository) Revenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled'`).Scan(&revenue)
	return revenue, err
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[Status]int{}
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
