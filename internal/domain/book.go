package domain

import "time"

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	GenreKey    string    `json:"genre,omitempty"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Currency    string    `json:"currency"`
	Stock       int       `json:"stock"`
	CoverURL    string    `json:"coverUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookFilter narrows catalog listings. Zero values mean "no constraint".
type BookFilter struct {
	GenreKey      string
	MinPriceCents int64
	MaxPriceCents int64
	Query         string
	Limit         int
}
