package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	domproduct "example.com/storefront/internal/domain/product"
	"example.com/storefront/internal/metrics"
)

const hatID = "652f1c2e9b1e8a3d4c5b6a71"

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"652f1c2e9b1e8a3d4c5b6a71","name":"Red Hat","description":"wool","price":10,"category":"Hats","image":"http://img/hat.png"},
			{"_id":"652f1c2e9b1e8a3d4c5b6a72","name":"Blue Hat","description":"cotton","price":5,"category":"Hats"}
		]`))
	})
	mux.HandleFunc("GET /api/products/category/{category}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.PathValue("category") == "Summer Hats" {
			_, _ = w.Write([]byte(`[{"_id":"652f1c2e9b1e8a3d4c5b6a71","name":"Straw Hat","price":12,"category":"Summer Hats"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case hatID:
			_, _ = w.Write([]byte(`{"_id":"652f1c2e9b1e8a3d4c5b6a71","name":"Red Hat","price":10,"category":"Hats"}`))
		case "bad":
			http.Error(w, `{"message":"Invalid product ID."}`, http.StatusBadRequest)
		case "boom":
			http.Error(w, `{"message":"Server error"}`, http.StatusInternalServerError)
		case "garbage":
			_, _ = w.Write([]byte(`{not json`))
		default:
			http.Error(w, `{"message":"Product not found"}`, http.StatusNotFound)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_RejectsInvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:5000", "://nope"} {
		_, err := NewClient(raw)
		require.Error(t, err, raw)
	}
}

func TestFetchAllProducts(t *testing.T) {
	srv := newBackend(t)
	reg := metrics.NewRegistry("test")
	client, err := NewClient(srv.URL+"/", WithMetrics(reg))
	require.NoError(t, err)

	products, err := client.FetchAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, domproduct.Product{
		ID:          hatID,
		Name:        "Red Hat",
		Description: "wool",
		Price:       10,
		Category:    "Hats",
		Image:       "http://img/hat.png",
	}, products[0])
	require.Equal(t, 1.0, testutil.ToFloat64(reg.BackendFetches.WithLabelValues("all", "ok")))
}

func TestFetchProductsByCategory_EscapesPath(t *testing.T) {
	srv := newBackend(t)
	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	products, err := client.FetchProductsByCategory(context.Background(), "Summer Hats")
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Straw Hat", products[0].Name)

	empty, err := client.FetchProductsByCategory(context.Background(), "Shoes")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestFetchProductByID(t *testing.T) {
	srv := newBackend(t)
	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		p, err := client.FetchProductByID(ctx, hatID)
		require.NoError(t, err)
		require.Equal(t, "Red Hat", p.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := client.FetchProductByID(ctx, "652f1c2e9b1e8a3d4c5b6a79")
		require.ErrorIs(t, err, domproduct.ErrProductNotFound)
	})

	t.Run("InvalidID", func(t *testing.T) {
		_, err := client.FetchProductByID(ctx, "bad")
		require.ErrorIs(t, err, domproduct.ErrInvalidID)
	})

	t.Run("ServerError", func(t *testing.T) {
		_, err := client.FetchProductByID(ctx, "boom")
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		require.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		_, err := client.FetchProductByID(ctx, "garbage")
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		require.Zero(t, netErr.StatusCode)
		require.Error(t, netErr.Unwrap())
	})
}

func TestFetch_Unreachable(t *testing.T) {
	srv := newBackend(t)
	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = client.FetchAllProducts(context.Background())
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	require.Zero(t, netErr.StatusCode)
	require.NotNil(t, netErr.Err)
}

func TestFetch_CancelledContext(t *testing.T) {
	srv := newBackend(t)
	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.FetchAllProducts(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
