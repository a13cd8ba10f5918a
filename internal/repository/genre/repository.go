package genre

import (
	"context"

	"bookhaven/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Genre, error)
	Upsert(ctx context.Context, g domain.Genre) error
}
