package domain

import (
	"fmt"
	"time"
)

type Order struct {
	ID              string        `json:"id"`
	CustomerID      string        `json:"customerId"`
	TotalCents      int64         `json:"totalCents"`
	ShippingAddress string        `json:"shippingAddress"`
	PaymentMethod   string        `json:"paymentMethod,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	Items           []OrderItem   `json:"items,omitempty"`
	Statuses        []OrderStatus `json:"statuses,omitempty"`
}

// OrderItem carries the price captured when the order was placed; later
// catalog price changes never touch it.
type OrderItem struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	BookID         string    `json:"bookId"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OrderStatus is one entry of the append-only status history. The newest
// entry is the order's current status.
type OrderStatus struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	Label          string    `json:"label"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// StatusNew is the single status written when an order is placed.
const StatusNew = "New"

// CurrentStatus returns the newest status label, or "" for an order loaded
// without its history.
func (o *Order) CurrentStatus() string {
	if len(o.Statuses) == 0 {
		return ""
	}
	return o.Statuses[len(o.Statuses)-1].Label
}

// InsufficientStockError aborts a placement when a requested quantity
// exceeds the stock available at lock time.
type InsufficientStockError struct {
	BookID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for book %s: requested %d, available %d", e.BookID, e.Requested, e.Available)
}

// ItemNotFoundError aborts a placement when a cart references a book that
// no longer exists in the catalog.
type ItemNotFoundError struct {
	BookID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("book %s not found", e.BookID)
}
