package cart

import (
	"context"

	domcart "example.com/storefront/internal/domain/cart"
	domproduct "example.com/storefront/internal/domain/product"
)

type CartRepository interface {
	domcart.Repository
}

type ProductSource interface {
	FetchProductByID(ctx context.Context, id string) (domproduct.Product, error)
}

type Service struct {
	cartRepo CartRepository
	products ProductSource
}

func NewService(cartRepo CartRepository, products ProductSource) *Service {
	return &Service{
		cartRepo: cartRepo,
		products: products,
	}
}

// AddToCart resolves productID against the backend and merges it into the
// session's cart. The cart is left unchanged when the lookup fails.
func (s *Service) AddToCart(ctx context.Context, sessionID, productID string) (domcart.Cart, error) {
	if err := domproduct.ValidateID(productID); err != nil {
		return domcart.Cart{}, err
	}
	p, err := s.products.FetchProductByID(ctx, productID)
	if err != nil {
		return domcart.Cart{}, err
	}
	return s.cartRepo.Update(ctx, sessionID, func(c domcart.Cart) domcart.Cart {
		return domcart.Add(c, p)
	})
}

func (s *Service) RemoveFromCart(ctx context.Context, sessionID, productID string) (domcart.Cart, error) {
	return s.cartRepo.Update(ctx, sessionID, func(c domcart.Cart) domcart.Cart {
		return domcart.Remove(c, productID)
	})
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) (domcart.Cart, error) {
	return s.cartRepo.Update(ctx, sessionID, domcart.Clear)
}

func (s *Service) GetCart(ctx context.Context, sessionID string) (domcart.Cart, error) {
	return s.cartRepo.Get(ctx, sessionID)
}

// DropCart forgets the session's cart entirely.
func (s *Service) DropCart(ctx context.Context, sessionID string) error {
	return s.cartRepo.Delete(ctx, sessionID)
}
