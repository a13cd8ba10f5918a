package customer

import (
	"context"

	"bookhaven/internal/domain"
)

type ProfileUpdate struct {
	FirstName string
	LastName  string
	Address   domain.Address
}

type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*domain.Customer, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	AddLoyaltyPoints(ctx context.Context, id string, points int) error
}
