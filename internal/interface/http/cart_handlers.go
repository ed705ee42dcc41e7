package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (s *Storefront) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cartSvc.GetCart(r.Context(), sessionID(r.Context()))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (s *Storefront) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := decodeAndValidate(s.validator, r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, validationMessage("Cart item", err))
		return
	}

	cart, err := s.cartSvc.AddToCart(r.Context(), sessionID(r.Context()), req.ProductID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	s.metrics.ObserveCartOp("add")
	writeJSON(w, http.StatusCreated, mapCart(cart))
}

func (s *Storefront) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cartSvc.RemoveFromCart(r.Context(), sessionID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	s.metrics.ObserveCartOp("remove")
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (s *Storefront) handleClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cartSvc.ClearCart(r.Context(), sessionID(r.Context()))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	s.metrics.ObserveCartOp("clear")
	writeJSON(w, http.StatusOK, mapCart(cart))
}
