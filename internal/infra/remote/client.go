// Package remote is the storefront's HTTP adapter to the products API.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	domproduct "example.com/storefront/internal/domain/product"
	"example.com/storefront/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// NetworkError is returned when a request fails in transit or the backend
// answers with an unexpected status.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

type productDTO struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
}

func (d productDTO) toDomain() domproduct.Product {
	return domproduct.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Image:       d.Image,
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Registry
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithMetrics(m *metrics.Registry) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("remote.NewClient: invalid base url %q", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) FetchAllProducts(ctx context.Context) ([]domproduct.Product, error) {
	const op = "remote.Client.FetchAllProducts"

	products, err := c.fetchList(ctx, op, "/api/products")
	c.metrics.ObserveFetch("all", err)
	return products, err
}

func (c *Client) FetchProductsByCategory(ctx context.Context, category string) ([]domproduct.Product, error) {
	const op = "remote.Client.FetchProductsByCategory"

	products, err := c.fetchList(ctx, op, "/api/products/category/"+url.PathEscape(category))
	c.metrics.ObserveFetch("category", err)
	return products, err
}

// FetchProductByID maps a 404 to product.ErrProductNotFound and a 400 to
// product.ErrInvalidID.
func (c *Client) FetchProductByID(ctx context.Context, id string) (domproduct.Product, error) {
	const op = "remote.Client.FetchProductByID"

	var dto productDTO
	err := c.getJSON(ctx, op, "/api/products/"+url.PathEscape(id), &dto)
	c.metrics.ObserveFetch("detail", err)
	if err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			switch netErr.StatusCode {
			case http.StatusNotFound:
				return domproduct.Product{}, fmt.Errorf("%s: %w", op, domproduct.ErrProductNotFound)
			case http.StatusBadRequest:
				return domproduct.Product{}, fmt.Errorf("%s: %w", op, domproduct.ErrInvalidID)
			}
		}
		return domproduct.Product{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) fetchList(ctx context.Context, op, path string) ([]domproduct.Product, error) {
	var dtos []productDTO
	if err := c.getJSON(ctx, op, path, &dtos); err != nil {
		return nil, err
	}
	products := make([]domproduct.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, dst any) error {
	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &NetworkError{Op: op, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Op: op, URL: target, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &NetworkError{Op: op, URL: target, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
