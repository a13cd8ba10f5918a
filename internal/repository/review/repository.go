package review

import (
	"context"

	"bookhaven/internal/domain"
)

type Repository interface {
	ListByBook(ctx context.Context, bookID string) ([]domain.Review, error)
	// Upsert writes the customer's review of a book, replacing any earlier
	// one (one review per customer per book).
	Upsert(ctx context.Context, r domain.Review) (*domain.Review, error)
	Summary(ctx context.Context, bookID string) (*domain.RatingSummary, error)
}
