package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domcart "example.com/storefront/internal/domain/cart"
	domcatalog "example.com/storefront/internal/domain/catalog"
	domproduct "example.com/storefront/internal/domain/product"
	"example.com/storefront/internal/infra/remote"
)

var errInvalidBody = errors.New("Invalid request body.")

type messageResponse struct {
	Message string `json:"message"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func decodeAndValidate(v *validator.Validate, r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody
	}
	return v.Struct(dst)
}

// validationMessage renders validator errors as
// "<subject> validation failed: name: Path `name` is required., ...".
func validationMessage(subject string, err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			parts = append(parts, fmt.Sprintf("%s: Path `%s` is required.", fe.Field(), fe.Field()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: must satisfy %s=%s.", fe.Field(), fe.Tag(), fe.Param()))
	}
	return subject + " validation failed: " + strings.Join(parts, ", ")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondMessage(w, status, err.Error())
}

func handleDomainError(w http.ResponseWriter, err error) {
	var netErr *remote.NetworkError
	switch {
	case errors.Is(err, domproduct.ErrInvalidID):
		respondMessage(w, http.StatusBadRequest, "Invalid product ID.")
	case errors.Is(err, domproduct.ErrProductNotFound):
		respondMessage(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domproduct.ErrInvalidProduct),
		errors.Is(err, domcatalog.ErrInvalidSortOption):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domcatalog.ErrSuperseded):
		respondError(w, http.StatusConflict, err)
	case errors.As(err, &netErr):
		slog.Warn("backend request failed", "err", err)
		respondMessage(w, http.StatusBadGateway, fetchFailureMessage(netErr))
	default:
		slog.Error("request failed", "err", err)
		respondMessage(w, http.StatusInternalServerError, "Server error")
	}
}

func fetchFailureMessage(err *remote.NetworkError) string {
	if err.StatusCode != 0 {
		return fmt.Sprintf("Failed to fetch products: %d", err.StatusCode)
	}
	return fmt.Sprintf("Failed to fetch products: %v", err.Err)
}

// mapProduct renders the wire form shared by the API and the storefront.
func mapProduct(p domproduct.Product) map[string]any {
	m := map[string]any{
		"_id":         p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
	}
	if p.Image != "" {
		m["image"] = p.Image
	}
	return m
}

func mapProducts(products []domproduct.Product) []map[string]any {
	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	return resp
}

func mapCart(c domcart.Cart) map[string]any {
	items := make([]map[string]any, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, map[string]any{
			"product":  mapProduct(line.Product),
			"quantity": line.Quantity,
		})
	}
	return map[string]any{
		"items": items,
		"count": c.Count(),
		"total": c.Total(),
	}
}

func mapQuery(q domcatalog.Query) map[string]any {
	return map[string]any{
		"search":   q.Search,
		"category": q.Category,
		"sort":     q.Sort.String(),
	}
}
