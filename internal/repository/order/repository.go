package order

import (
	"context"

	"bookhaven/internal/domain"
)

// Tx exposes the placement steps that must happen atomically. All writes
// made through a Tx become visible only on Commit; Rollback discards them,
// including stock decrements.
type Tx interface {
	// InsertHeader creates the order row with a zero total and returns the
	// assigned order id.
	InsertHeader(ctx context.Context, customerID, shippingAddress, paymentMethod string) (string, error)
	// BookPriceAndStock reads price and stock with an exclusive row lock
	// held until the transaction ends.
	BookPriceAndStock(ctx context.Context, bookID string) (priceCents int64, stock int, err error)
	// DecrementStock subtracts quantity guarded by a stock >= quantity
	// predicate and reports how many rows were affected. Zero means a
	// concurrent writer got there first.
	DecrementStock(ctx context.Context, bookID string, quantity int) (int64, error)
	InsertItem(ctx context.Context, orderID, bookID string, quantity int, unitPriceCents int64) error
	UpdateTotal(ctx context.Context, orderID string, totalCents int64) error
	InsertStatus(ctx context.Context, orderID, label string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Repository interface {
	Begin(ctx context.Context) (Tx, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	// GetByID loads one order with its items and full status history.
	// customerID scopes the lookup so customers cannot read each other's
	// orders.
	GetByID(ctx context.Context, customerID, orderID string) (*domain.Order, error)
	AppendStatus(ctx context.Context, orderID, label, trackingNumber string) error
}
