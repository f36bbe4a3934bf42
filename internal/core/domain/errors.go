package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrBackend       = errors.New("backend failure")
	ErrUnauthorized  = errors.New("customer is not logged in")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidForm   = errors.New("invalid form")
	ErrStorage       = errors.New("storage is unavailable")
)
