package book

import (
	"context"

	"bookhaven/internal/domain"
)

type Repository interface {
	List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error)
	Upsert(ctx context.Context, b domain.Book) (*domain.Book, error)
}
