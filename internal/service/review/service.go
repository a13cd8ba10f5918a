package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookhaven/internal/domain"
	reviewrepo "bookhaven/internal/repository/review"
)

type Service struct {
	repo reviewrepo.Repository
}

func New(repo reviewrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Rating int    `json:"rating"`
	Body   string `json:"body"`
}

func (s *Service) ListByBook(ctx context.Context, bookID string) ([]domain.Review, error) {
	return s.repo.ListByBook(ctx, bookID)
}

// Upsert records the customer's review of a book, replacing an earlier one.
func (s *Service) Upsert(ctx context.Context, customerID, bookID string, in Input) (*domain.Review, error) {
	if bookID == "" {
		return nil, errors.New("bookId required")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 0 and 5, got %d", in.Rating)
	}
	return s.repo.Upsert(ctx, domain.Review{
		BookID:     bookID,
		CustomerID: customerID,
		Rating:     in.Rating,
		Body:       strings.TrimSpace(in.Body),
	})
}

func (s *Service) Summary(ctx context.Context, bookID string) (*domain.RatingSummary, error) {
	return s.repo.Summary(ctx, bookID)
}
