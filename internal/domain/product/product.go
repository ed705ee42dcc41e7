package product

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
}

type ListFilter struct {
	Category string
}

// NewID mints a fresh ObjectID in its 24-char hex form.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidateID reports ErrInvalidID unless id is a well-formed ObjectID.
func ValidateID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" || p.Price < 0 {
		return ErrInvalidProduct
	}
	return nil
}
