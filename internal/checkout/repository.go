package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparkbazaar/sparkbazaar/internal/platform/db"
	"github.com/sparkbazaar/sparkbazaar/internal/platform/httpx"
)

// ItemInput is one order line written during checkout.
type ItemInput struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64
}

// TxRepository exposes the checkout steps. All methods run inside the
// same transaction, so a failure at any step undoes every prior one.
type TxRepository interface {
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
	CreateCustomer(ctx context.Context, info CustomerInfo) (string, error)
	CreateOrder(ctx context.Context, customerID string, total float64) (string, error)
	AddOrderItem(ctx context.Context, orderID string, item ItemInput) error
	DecrementStock(ctx context.Context, productID string, quantity int) error
}

// Repository opens the checkout transaction.
type Repository interface {
	InTx(ctx context.Context, fn func(TxRepository) error) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) InTx(ctx context.Context, fn func(TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := r.tx.QueryRow(ctx, `SELECT id FROM customers WHERE lower(email) = lower($1)`, email).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", httpx.ErrNotFound
	}
	return id, err
}

func (r *txRepository) CreateCustomer(ctx context.Context, info CustomerInfo) (string, error) {
	var id string
	err := r.tx.QueryRow(ctx,
		`INSERT INTO customers (name, email, phone, address, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		info.Name, info.Email, info.Phone, info.Address, time.Now(),
	).Scan(&id)
	return id, err
}

func (r *txRepository) CreateOrder(ctx context.Context, customerID string, total float64) (string, error) {
	var id string
	err := r.tx.QueryRow(ctx,
		`INSERT INTO orders (customer_id, status, total_amount, created_at) VALUES ($1, 'pending', $2, $3) RETURNING id`,
		customerID, total, time.Now(),
	).Scan(&id)
	return id, err
}

func (r *txRepository) AddOrderItem(ctx context.Context, orderID string, item ItemInput) error {
	_, err := r.tx.Exec(ctx,
		`INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, total_price) VALUES ($1, $2, $3, $4, $5, $6)`,
		orderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice)
	return err
}

// DecrementStock only succeeds when enough units remain, which keeps
// stock_quantity from ever going negative under concurrent checkouts.
func (r *txRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	tag, err := r.tx.Exec(ctx,
		`UPDATE products SET stock_quantity = stock_quantity - $1 WHERE id = $2 AND stock_quantity >= $1`,
		quantity, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}
