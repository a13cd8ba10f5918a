package domain

import "time"

type Review struct {
	ID         string    `json:"id"`
	BookID     string    `json:"bookId"`
	CustomerID string    `json:"customerId"`
	Rating     int       `json:"rating"`
	Body       string    `json:"body,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RatingSummary aggregates reviews for one book.
type RatingSummary struct {
	BookID  string  `json:"bookId"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
