package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/cc-ecommerce/internal/platform/config"
)

func echoBackend(name string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, name+" "+r.Method+" "+r.URL.RequestURI())
	}))
}

func TestGatewayRouting(t *testing.T) {
	products := echoBackend("product")
	defer products.Close()
	orders := echoBackend("order")
	defer orders.Close()

	mux, err := newGatewayMux(config.GatewayConfig{ProductServiceURL: products.URL, OrderServiceURL: orders.URL})
	require.NoError(t, err)

	tests := []struct {
		method, target, want string
	}{
		{http.MethodGet, "/products?offset=0&limit=10", "product GET /products?offset=0&limit=10"},
		{http.MethodGet, "/api/v1/products?offset=10&limit=10&min_price=5", "product GET /api/v1/products?offset=10&limit=10&min_price=5"},
		{http.MethodPost, "/orders", "order POST /orders"},
		{http.MethodPost, "/api/v1/orders", "order POST /api/v1/orders"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, http.StatusOK, rec.Code, tt.target)
		assert.Equal(t, tt.want, rec.Body.String())
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGatewayBackendDown(t *testing.T) {
	down := echoBackend("product")
	url := down.URL
	down.Close()

	mux, err := newGatewayMux(config.GatewayConfig{ProductServiceURL: url, OrderServiceURL: url})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?offset=0&limit=1", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGatewayRejectsBadTarget(t *testing.T) {
	_, err := newGatewayMux(config.GatewayConfig{ProductServiceURL: "localhost-no-scheme", OrderServiceURL: "http://localhost:8084"})
	assert.Error(t, err)
}
