package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"example.com/storefront/internal/metrics"
	cartuc "example.com/storefront/internal/usecase/cart"
	cataloguc "example.com/storefront/internal/usecase/catalog"
)

// Storefront serves the shopper-facing catalog, product detail and cart
// endpoints on top of the products API.
type Storefront struct {
	catalog   *cataloguc.Store
	cartSvc   *cartuc.Service
	metrics   *metrics.Registry
	validator *validator.Validate
}

type StorefrontDependencies struct {
	Catalog     *cataloguc.Store
	CartService *cartuc.Service
	// Metrics is optional.
	Metrics *metrics.Registry
}

func NewStorefront(deps StorefrontDependencies) *Storefront {
	return &Storefront{
		catalog:   deps.Catalog,
		cartSvc:   deps.CartService,
		metrics:   deps.Metrics,
		validator: newValidator(),
	}
}

func (s *Storefront) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", sessionHeader},
		ExposedHeaders:   []string{sessionHeader},
		AllowCredentials: false,
	}))
	r.Use(chimw.AllowContentType("application/json", "text/plain"))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(sessionMiddleware)

		r.Get("/catalog", s.handleCatalog)
		r.Get("/catalog/category/{category}", s.handleCategory)
		r.Get("/catalog/products/{id}", s.handleProductDetail)

		r.Get("/cart", s.handleGetCart)
		r.Post("/cart/items", s.handleAddCartItem)
		r.Delete("/cart/items/{id}", s.handleRemoveCartItem)
		r.Delete("/cart", s.handleClearCart)

		r.Get("/session", s.handleGetSession)
		r.Delete("/session", s.handleEndSession)
	})

	return r
}
