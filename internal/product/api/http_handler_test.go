package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/cc-ecommerce/internal/product/domain"
	"github.com/ridloal/cc-ecommerce/internal/product/service"
)

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	args := m.Called(ctx, q)
	if res := args.Get(0); res != nil {
		return res.(*domain.ProductPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newTestRouter(svc service.ProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewProductHandler(svc).RegisterRoutes(router)
	return router
}

func doGet(router *gin.Engine, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListProducts(t *testing.T) {
	t.Run("binds window and bounds", func(t *testing.T) {
		svc := new(mockProductService)
		next, prev := 20, 0
		page := &domain.ProductPage{
			Data: []domain.Product{{ID: "64b7f0c2a1", Name: "Lamp", Price: 15, Quantity: 2}},
			Page: domain.Page{Total: 42, Limit: 10, NextOffset: &next, PrevOffset: &prev},
		}
		svc.On("ListProducts", mock.Anything, mock.MatchedBy(func(q domain.ProductQuery) bool {
			return q.Offset == 10 && q.Limit == 10 &&
				q.MinPrice != nil && *q.MinPrice == 5 &&
				q.MaxPrice != nil && *q.MaxPrice == 20
		})).Return(page, nil).Once()

		rec := doGet(newTestRouter(svc), "/products?offset=10&limit=10&min_price=5&max_price=20")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"data": [{"id": "64b7f0c2a1", "name": "Lamp", "price": 15, "quantity": 2}],
			"page": {"total": 42, "limit": 10, "nextOffset": 20, "prevOffset": 0}
		}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("absent offsets serialise as null", func(t *testing.T) {
		svc := new(mockProductService)
		svc.On("ListProducts", mock.Anything, domain.ProductQuery{Offset: 0, Limit: 5}).
			Return(&domain.ProductPage{Data: []domain.Product{}, Page: domain.NewPage(0, 0, 5)}, nil).Once()

		rec := doGet(newTestRouter(svc), "/products?offset=0&limit=5")

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["page"], "nextOffset")
		assert.Nil(t, body["page"]["nextOffset"])
		assert.Contains(t, body["page"], "prevOffset")
		assert.Nil(t, body["page"]["prevOffset"])
	})

	t.Run("missing or invalid window is rejected", func(t *testing.T) {
		svc := new(mockProductService)
		router := newTestRouter(svc)

		for _, target := range []string{
			"/products",
			"/products?limit=10",
			"/products?offset=0",
			"/products?offset=0&limit=0",
			"/products?offset=-1&limit=10",
			"/products?offset=abc&limit=10",
			"/products?offset=0&limit=10&min_price=cheap",
			"/products?offset=&limit=10",
			"/products?offset=0&limit=",
			"/products?offset=0&limit=10&min_price=",
			"/products?offset=0&limit=10&max_price=",
		} {
			rec := doGet(router, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		}
		svc.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
	})

	t.Run("empty value names the parameter", func(t *testing.T) {
		svc := new(mockProductService)

		rec := doGet(newTestRouter(svc), "/products?offset=0&limit=10&max_price=")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "max_price must not be empty")
		svc.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
	})

	t.Run("service failure is a 500", func(t *testing.T) {
		svc := new(mockProductService)
		svc.On("ListProducts", mock.Anything, mock.Anything).Return(nil, errors.New("server selection timeout")).Once()

		rec := doGet(newTestRouter(svc), "/products?offset=0&limit=10")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to retrieve products"}`, rec.Body.String())
	})

	t.Run("service validation error is a 400", func(t *testing.T) {
		svc := new(mockProductService)
		svc.On("ListProducts", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidQuery).Once()

		rec := doGet(newTestRouter(svc), "/products?offset=0&limit=10")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEmptyQueryParam(t *testing.T) {
	q, _ := url.ParseQuery("offset=0&limit=10")
	assert.Empty(t, emptyQueryParam(q))

	q, _ = url.ParseQuery("offset=&limit=10")
	assert.Equal(t, "offset", emptyQueryParam(q))

	q, _ = url.ParseQuery("offset=0&limit=10&min_price=%20")
	assert.Equal(t, "min_price", emptyQueryParam(q))

	q, _ = url.ParseQuery("offset=0&limit=10&sort=")
	assert.Empty(t, emptyQueryParam(q))
}
