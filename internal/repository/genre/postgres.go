package genre

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Genre, error) {
	const q = `
SELECT key, name
FROM genres
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.Key, &g.Name); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, g domain.Genre) error {
	const q = `
INSERT INTO genres (key, name)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET name = EXCLUDED.name
`
	_, err := r.pool.Exec(ctx, q, g.Key, g.Name)
	return err
}
