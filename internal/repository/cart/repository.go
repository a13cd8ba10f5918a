package cart

import (
	"context"

	"bookhaven/internal/domain"
)

type Repository interface {
	// Items returns the customer's cart joined with current catalog data,
	// oldest additions first.
	Items(ctx context.Context, customerID string) ([]domain.CartItem, error)
	// SetItem upserts one row; quantity must be positive.
	SetItem(ctx context.Context, customerID, bookID string, quantity int) error
	RemoveItem(ctx context.Context, customerID, bookID string) error
	Clear(ctx context.Context, customerID string) error
}
