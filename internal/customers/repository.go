package customers

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparkbazaar/sparkbazaar/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, search string, page, limit int) ([]Customer, int, error)
	Get(ctx context.Context, id string) (Customer, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context, search string, page, limit int) ([]Customer, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if search != "" {
		argCount++
		where += ` AND (c.name ILIKE $` + strconv.Itoa(argCount) + ` OR c.email ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers c`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT c.id, c.name, c.email, c.phone, c.address, c.created_at, COUNT(o.id)
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id` + where + `
		GROUP BY c.id, c.name, c.email, c.phone, c.address, c.created_at
		ORDER BY c.created_at DESC`

	if limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (page - 1) * limit
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

	var list []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.OrderCount); err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Customer, error) {
	var c Customer
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, phone, address, created_at FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, httpx.ErrNotFound
		}
		return Customer{}, err
	}
	return c, nil
}
