package domain

import "time"

// Address stores shipping address fields returned to clients.
type Address struct {
	Country    string `json:"country,omitempty"`
	City       string `json:"city,omitempty"`
	StreetName string `json:"streetName,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Customer represents a registered storefront user.
type Customer struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty"`
	Address       Address   `json:"address"`
	LoyaltyPoints int       `json:"loyaltyPoints"`
	CreatedAt     time.Time `json:"createdAt"`
}
