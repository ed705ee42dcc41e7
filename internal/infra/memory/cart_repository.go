// Package memory keeps storefront session state in process memory. Nothing
// here survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	domcart "example.com/storefront/internal/domain/cart"
)

type cartEntry struct {
	cart     domcart.Cart
	lastSeen time.Time
}

type CartRepository struct {
	mu    sync.Mutex
	carts map[string]*cartEntry
	now   func() time.Time
}

func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string]*cartEntry),
		now:   time.Now,
	}
}

func (r *CartRepository) Get(ctx context.Context, sessionID string) (domcart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domcart.Cart{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.carts[sessionID]; ok {
		e.lastSeen = r.now()
		return e.cart, nil
	}
	return emptyCart(sessionID), nil
}

// Update stores the result of fn. A cart left without lines is not kept.
func (r *CartRepository) Update(ctx context.Context, sessionID string, fn func(domcart.Cart) domcart.Cart) (domcart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domcart.Cart{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current := emptyCart(sessionID)
	if e, ok := r.carts[sessionID]; ok {
		current = e.cart
	}
	updated := fn(current)
	updated.SessionID = sessionID
	if len(updated.Lines) == 0 {
		delete(r.carts, sessionID)
		return emptyCart(sessionID), nil
	}
	r.carts[sessionID] = &cartEntry{cart: updated, lastSeen: r.now()}
	return updated, nil
}

func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

// Sweep drops carts untouched since before cutoff and reports how many were
// dropped.
func (r *CartRepository) Sweep(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.carts {
		if e.lastSeen.Before(cutoff) {
			delete(r.carts, id)
			n++
		}
	}
	return n
}

func emptyCart(sessionID string) domcart.Cart {
	return domcart.Cart{SessionID: sessionID, Lines: []domcart.Line{}}
}
