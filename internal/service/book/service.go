package book

import (
	"context"
	"strings"

	"bookhaven/internal/domain"
	bookrepo "bookhaven/internal/repository/book"
)

const defaultSuggestLimit = 10

type Service struct {
	repo bookrepo.Repository
}

func New(repo bookrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Suggest returns up to limit titles starting with the typed prefix.
func (s *Service) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, nil
	}
	if limit <= 0 || limit > 25 {
		limit = defaultSuggestLimit
	}
	return s.repo.SuggestTitles(ctx, prefix, limit)
}
