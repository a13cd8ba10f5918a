package order

import (
	"context"
	"errors"
	"io"
	"log"

	"bookhaven/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Begin(ctx context.Context) (Tx, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &postgresTx{tx: tx}, nil
}

type postgresTx struct {
	tx pgx.Tx
}

func (t *postgresTx) InsertHeader(ctx context.Context, customerID, shippingAddress, paymentMethod string) (string, error) {
	const q = `
INSERT INTO orders (customer_id, total_cents, shipping_address, payment_method)
VALUES ($1, 0, $2, NULLIF($3, ''))
RETURNING id::text
`
	var orderID string
	if err := t.tx.QueryRow(ctx, q, customerID, shippingAddress, paymentMethod).Scan(&orderID); err != nil {
		return "", err
	}
	return orderID, nil
}

func (t *postgresTx) BookPriceAndStock(ctx context.Context, bookID string) (int64, int, error) {
	const q = `
SELECT price_cents, stock
FROM books
WHERE id = $1
FOR UPDATE
`
	var price int64
	var stock int
	if err := t.tx.QueryRow(ctx, q, bookID).Scan(&price, &stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, domain.ErrNotFound
		}
		return 0, 0, err
	}
	return price, stock, nil
}

func (t *postgresTx) DecrementStock(ctx context.Context, bookID string, quantity int) (int64, error) {
	const q = `
UPDATE books
SET stock = stock - $2
WHERE id = $1 AND stock >= $2
`
	cmd, err := t.tx.Exec(ctx, q, bookID, quantity)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (t *postgresTx) InsertItem(ctx context.Context, orderID, bookID string, quantity int, unitPriceCents int64) error {
	const q = `
INSERT INTO order_items (order_id, book_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
`
	_, err := t.tx.Exec(ctx, q, orderID, bookID, quantity, unitPriceCents)
	return err
}

func (t *postgresTx) UpdateTotal(ctx context.Context, orderID string, totalCents int64) error {
	_, err := t.tx.Exec(ctx, `UPDATE orders SET total_cents = $1 WHERE id = $2`, totalCents, orderID)
	return err
}

func (t *postgresTx) InsertStatus(ctx context.Context, orderID, label string) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO order_statuses (order_id, label) VALUES ($1, $2)`, orderID, label)
	return err
}

func (t *postgresTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *postgresTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

const orderColumns = `id::text, customer_id::text, total_cents, shipping_address, COALESCE(payment_method, ''), created_at`

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("order repo: list customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.TotalCents, &o.ShippingAddress, &o.PaymentMethod, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach the newest status as the current one for list views.
	for i := range orders {
		statuses, err := r.statuses(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Statuses = statuses
	}
	return orders, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE customer_id = $1 AND id = $2
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, customerID, orderID).Scan(&o.ID, &o.CustomerID, &o.TotalCents, &o.ShippingAddress, &o.PaymentMethod, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", orderID, err)
		return nil, err
	}

	const itemsQ = `
SELECT id::text, order_id::text, book_id::text, quantity, unit_price_cents, created_at
FROM order_items
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQ, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.BookID, &it.Quantity, &it.UnitPriceCents, &it.CreatedAt); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	o.Statuses, err = r.statuses(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) AppendStatus(ctx context.Context, orderID, label, trackingNumber string) error {
	const q = `
INSERT INTO order_statuses (order_id, label, tracking_number)
VALUES ($1, $2, NULLIF($3, ''))
`
	_, err := r.pool.Exec(ctx, q, orderID, label, trackingNumber)
	return err
}

func (r *postgresRepo) statuses(ctx context.Context, orderID string) ([]domain.OrderStatus, error) {
	const q = `
SELECT id::text, order_id::text, label, COALESCE(tracking_number, ''), created_at
FROM order_statuses
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []domain.OrderStatus
	for rows.Next() {
		var s domain.OrderStatus
		if err := rows.Scan(&s.ID, &s.OrderID, &s.Label, &s.TrackingNumber, &s.CreatedAt); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}
