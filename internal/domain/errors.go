package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart rejects an order placement with no usable line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingAddress rejects an order placement with a blank shipping address.
	ErrMissingAddress = errors.New("shipping address required")
)
