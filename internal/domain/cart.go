package domain

import "time"

// CartItem is one row of a customer's persisted cart, joined with the
// catalog fields the storefront needs to render it.
type CartItem struct {
	BookID     string    `json:"bookId"`
	Title      string    `json:"title"`
	Author     string    `json:"author,omitempty"`
	Quantity   int       `json:"quantity"`
	PriceCents int64     `json:"priceCents"`
	Currency   string    `json:"currency"`
	Stock      int       `json:"stock"`
	AddedAt    time.Time `json:"addedAt"`
}
