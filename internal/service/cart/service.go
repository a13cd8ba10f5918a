package cart

import (
	"context"
	"errors"

	"bookhaven/internal/domain"
)

type Service struct {
	repo  cartRepo
	books bookRepo
}

type cartRepo interface {
	Items(ctx context.Context, customerID string) ([]domain.CartItem, error)
	SetItem(ctx context.Context, customerID, bookID string, quantity int) error
	RemoveItem(ctx context.Context, customerID, bookID string) error
	Clear(ctx context.Context, customerID string) error
}

type bookRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Book, error)
}

func New(repo cartRepo, books bookRepo) *Service {
	return &Service{repo: repo, books: books}
}

func (s *Service) Items(ctx context.Context, customerID string) ([]domain.CartItem, error) {
	return s.repo.Items(ctx, customerID)
}

// SetItem upserts one cart row. A non-positive quantity removes the row,
// mirroring how the storefront's quantity spinner behaves.
func (s *Service) SetItem(ctx context.Context, customerID, bookID string, quantity int) error {
	if bookID == "" {
		return errors.New("bookId required")
	}
	if quantity <= 0 {
		err := s.repo.RemoveItem(ctx, customerID, bookID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return err
	}
	return s.repo.SetItem(ctx, customerID, bookID, quantity)
}

func (s *Service) RemoveItem(ctx context.Context, customerID, bookID string) error {
	return s.repo.RemoveItem(ctx, customerID, bookID)
}

func (s *Service) Clear(ctx context.Context, customerID string) error {
	return s.repo.Clear(ctx, customerID)
}
