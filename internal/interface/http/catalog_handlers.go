package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domcatalog "example.com/storefront/internal/domain/catalog"
)

func (s *Storefront) handleCatalog(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	sort, err := domcatalog.ParseSortOption(params.Get("sort"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	category := params.Get("category")
	if category == "" {
		category = domcatalog.AllCategories
	}
	q := domcatalog.Query{Search: params.Get("q"), Category: category, Sort: sort}

	if params.Get("refresh") == "true" {
		if _, err := s.catalog.Refresh(r.Context()); err != nil {
			handleDomainError(w, err)
			return
		}
	}

	view, err := s.catalog.View(r.Context(), q)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"products":   mapProducts(view.Products),
		"categories": view.Categories,
		"query":      mapQuery(view.Query),
	})
}

// handleCategory reads one category straight from the backend.
func (s *Storefront) handleCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	products, err := s.catalog.ByCategory(r.Context(), category)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"products": mapProducts(products),
	})
}

func (s *Storefront) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Detail(r.Context(), sessionID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (s *Storefront) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r.Context())
	cart, err := s.cartSvc.GetCart(r.Context(), sid)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	var viewing any
	if p, ok := s.catalog.Viewing(sid); ok {
		viewing = mapProduct(p)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sid,
		"viewing":    viewing,
		"cart":       mapCart(cart),
	})
}

// handleEndSession drops the session's cart and viewed product.
func (s *Storefront) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r.Context())
	s.catalog.Forget(sid)
	if err := s.cartSvc.DropCart(r.Context(), sid); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
