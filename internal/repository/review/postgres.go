package review

import (
	"context"
	"errors"

	"bookhaven/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByBook(ctx context.Context, bookID string) ([]domain.Review, error) {
	const q = `
SELECT id::text, book_id::text, customer_id::text, rating, body, created_at
FROM reviews
WHERE book_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.CustomerID, &rv.Rating, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, rv domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (book_id, customer_id, rating, body)
VALUES ($1, $2, $3, $4)
ON CONFLICT (book_id, customer_id) DO UPDATE SET
    rating = EXCLUDED.rating,
    body = EXCLUDED.body,
    created_at = now()
RETURNING id::text, created_at
`
	out := rv
	err := r.pool.QueryRow(ctx, q, rv.BookID, rv.CustomerID, rv.Rating, rv.Body).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503: the book or customer no longer exists.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Summary(ctx context.Context, bookID string) (*domain.RatingSummary, error) {
	const q = `
SELECT COALESCE(AVG(rating), 0), COUNT(*)
FROM reviews
WHERE book_id = $1
`
	s := domain.RatingSummary{BookID: bookID}
	if err := r.pool.QueryRow(ctx, q, bookID).Scan(&s.Average, &s.Count); err != nil {
		return nil, err
	}
	return &s, nil
}
