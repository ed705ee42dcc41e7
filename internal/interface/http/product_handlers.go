package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	domcatalog "example.com/storefront/internal/domain/catalog"
	domproduct "example.com/storefront/internal/domain/product"
)

const healthTimeout = 2 * time.Second

type createProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	Image       string   `json:"image"`
}

type updateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
}

func (a *API) handleBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Products API is running"))
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	if err := a.productSvc.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListProducts returns every product in stored order, or the filtered
// and sorted catalog when q, category or sort is given.
func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	var (
		products []*domproduct.Product
		err      error
	)
	if params.Has("q") || params.Has("category") || params.Has("sort") {
		sort, perr := domcatalog.ParseSortOption(params.Get("sort"))
		if perr != nil {
			handleDomainError(w, perr)
			return
		}
		products, err = a.productSvc.Search(r.Context(), domcatalog.Query{
			Search:   params.Get("q"),
			Category: params.Get("category"),
			Sort:     sort,
		})
	} else {
		products, err = a.productSvc.List(r.Context(), domproduct.ListFilter{})
	}
	if err != nil {
		respondListError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProductPtrs(products))
}

func (a *API) handleListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := a.productSvc.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		respondListError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProductPtrs(products))
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.productSvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(*p))
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeAndValidate(a.validator, r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, validationMessage("Product", err))
		return
	}
	p, err := a.productSvc.Create(r.Context(), &domproduct.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProduct(*p))
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := decodeAndValidate(a.validator, r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, validationMessage("Product", err))
		return
	}
	update := &domproduct.Product{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
	}
	if req.Price != nil {
		update.Price = *req.Price
	}
	p, err := a.productSvc.Update(r.Context(), update)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(*p))
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.productSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondListError keeps the list endpoints' own 500 message.
func respondListError(w http.ResponseWriter, err error) {
	if errors.Is(err, domcatalog.ErrInvalidSortOption) {
		handleDomainError(w, err)
		return
	}
	slog.Error("list products", "err", err)
	respondMessage(w, http.StatusInternalServerError, "Server error: Could not fetch products.")
}

func mapProductPtrs(products []*domproduct.Product) []map[string]any {
	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(*p))
	}
	return resp
}
