package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"example.com/storefront/internal/metrics"
	productuc "example.com/storefront/internal/usecase/product"
)

// API serves the products backend.
type API struct {
	productSvc *productuc.Service
	metrics    *metrics.Registry
	validator  *validator.Validate
}

type Dependencies struct {
	ProductService *productuc.Service
	// Metrics is optional.
	Metrics *metrics.Registry
}

func NewAPI(deps Dependencies) *API {
	return &API{
		productSvc: deps.ProductService,
		metrics:    deps.Metrics,
		validator:  newValidator(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(chimw.AllowContentType("application/json", "text/plain"))
	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	}

	r.Get("/", a.handleBanner)
	r.Get("/health", a.handleHealth)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", a.handleListProducts)
		r.Post("/", a.handleCreateProduct)
		r.Get("/category/{category}", a.handleListProductsByCategory)
		r.Get("/{id}", a.handleGetProduct)
		r.Put("/{id}", a.handleUpdateProduct)
		r.Delete("/{id}", a.handleDeleteProduct)
	})

	return r
}
