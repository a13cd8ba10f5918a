package cart

import (
	"context"

	"bookhaven/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Items(ctx context.Context, customerID string) ([]domain.CartItem, error) {
	const q = `
SELECT ci.book_id::text, b.title, b.author, ci.quantity, b.price_cents, b.currency, b.stock, ci.added_at
FROM cart_items ci
JOIN books b ON b.id = ci.book_id
WHERE ci.customer_id = $1
ORDER BY ci.added_at ASC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.BookID, &it.Title, &it.Author, &it.Quantity, &it.PriceCents, &it.Currency, &it.Stock, &it.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) SetItem(ctx context.Context, customerID, bookID string, quantity int) error {
	const q = `
INSERT INTO cart_items (customer_id, book_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (customer_id, book_id) DO UPDATE SET quantity = EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, customerID, bookID, quantity)
	return err
}

func (r *postgresRepo) RemoveItem(ctx context.Context, customerID, bookID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1 AND book_id = $2`, customerID, bookID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, customerID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID)
	return err
}
