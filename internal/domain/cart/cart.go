// Package cart holds the shopping cart value and the pure operations that
// transform it. Every operation returns a new Cart and leaves its input as is.
//
// Lines are identified by the product ID alone.
package cart

import (
	domproduct "example.com/storefront/internal/domain/product"
)

type Line struct {
	Product  domproduct.Product
	Quantity int64
}

type Cart struct {
	SessionID string
	Lines     []Line
}

// Add increments the quantity of the line holding p, or appends a new line
// with quantity 1.
func Add(c Cart, p domproduct.Product) Cart {
	lines := make([]Line, 0, len(c.Lines)+1)
	found := false
	for _, line := range c.Lines {
		if line.Product.ID == p.ID {
			line.Quantity++
			found = true
		}
		lines = append(lines, line)
	}
	if !found {
		lines = append(lines, Line{Product: p, Quantity: 1})
	}
	return Cart{SessionID: c.SessionID, Lines: lines}
}

// Remove drops every line for productID.
func Remove(c Cart, productID string) Cart {
	lines := make([]Line, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.Product.ID == productID {
			continue
		}
		lines = append(lines, line)
	}
	return Cart{SessionID: c.SessionID, Lines: lines}
}

func Clear(c Cart) Cart {
	return Cart{SessionID: c.SessionID, Lines: []Line{}}
}

// Count is the number of units across all lines.
func (c Cart) Count() int64 {
	var n int64
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

func (c Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}
