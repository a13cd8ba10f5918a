package book

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

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

const bookColumns = `id::text, title, author, COALESCE(genre_key, ''), COALESCE(description, ''), price_cents, currency, stock, COALESCE(cover_url, ''), created_at`

func (r *postgresRepo) List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.GenreKey != "" {
		args = append(args, filter.GenreKey)
		conds = append(conds, fmt.Sprintf("genre_key = $%d", len(args)))
	}
	if filter.MinPriceCents > 0 {
		args = append(args, filter.MinPriceCents)
		conds = append(conds, fmt.Sprintf("price_cents >= $%d", len(args)))
	}
	if filter.MaxPriceCents > 0 {
		args = append(args, filter.MaxPriceCents)
		conds = append(conds, fmt.Sprintf("price_cents <= $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + bookColumns + ` FROM books`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY title ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Printf("book repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.GenreKey, &b.Description, &b.PriceCents, &b.Currency, &b.Stock, &b.CoverURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("book repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	var b domain.Book
	err := r.pool.QueryRow(ctx, q, id).Scan(&b.ID, &b.Title, &b.Author, &b.GenreKey, &b.Description, &b.PriceCents, &b.Currency, &b.Stock, &b.CoverURL, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("book repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &b, nil
}

// SuggestTitles powers the search box dropdown with a bounded prefix match.
func (r *postgresRepo) SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error) {
	const q = `
SELECT title
FROM books
WHERE title ILIKE $1
ORDER BY title ASC
LIMIT $2
`
	rows, err := r.pool.Query(ctx, q, prefix+"%", limit)
	if err != nil {
		r.logger.Printf("book repo: suggest prefix=%q error=%v", prefix, err)
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, b domain.Book) (*domain.Book, error) {
	const q = `
INSERT INTO books (id, title, author, genre_key, description, price_cents, currency, stock, cover_url)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, NULLIF($9, ''))
ON CONFLICT (title, author) DO UPDATE SET
    genre_key = EXCLUDED.genre_key,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    stock = EXCLUDED.stock,
    cover_url = EXCLUDED.cover_url
RETURNING id::text, created_at
`
	res := b
	err := r.pool.QueryRow(ctx, q,
		b.ID,
		b.Title,
		b.Author,
		b.GenreKey,
		b.Description,
		b.PriceCents,
		b.Currency,
		b.Stock,
		b.CoverURL,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("book repo: upsert title=%q error=%v", b.Title, err)
		return nil, err
	}
	r.logger.Printf("book repo: upserted title=%q id=%s", res.Title, res.ID)
	return &res, nil
}
