package memory

// Len reports the number of sessions holding a cart.
func (r *CartRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}
