package cart

import "context"

// Repository keeps one cart per session.
type Repository interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	// Update applies fn to the session's cart atomically and stores the result.
	Update(ctx context.Context, sessionID string, fn func(Cart) Cart) (Cart, error)
	Delete(ctx context.Context, sessionID string) error
}
