package genre

import (
	"context"

	"bookhaven/internal/domain"
	genrerepo "bookhaven/internal/repository/genre"
)

type Service struct {
	repo genrerepo.Repository
}

func New(repo genrerepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Genre, error) {
	return s.repo.List(ctx)
}
