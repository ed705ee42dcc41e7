package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid product id")
	ErrInvalidProduct  = errors.New("invalid product")
)
