package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/cc-ecommerce/internal/platform/logger"
	"github.com/ridloal/cc-ecommerce/internal/product/domain"
	"github.com/ridloal/cc-ecommerce/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(ps service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/", h.ListProducts)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	// gin binds "offset=" as 0, so empty values are rejected before binding.
	if key := emptyQueryParam(c.Request.URL.Query()); key != "" {
		logger.Warn("ListProducts Hdl: empty query parameter", "param", key)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + key + " must not be empty"})
		return
	}

	var req domain.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("ListProducts Hdl: bad request", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.productService.ListProducts(c.Request.Context(), req.Query())
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("ListProducts Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, page)
}

var listProductsParams = []string{"offset", "limit", "min_price", "max_price"}

// emptyQueryParam returns the first listing parameter that is present
// without a value, or "" when there is none.
func emptyQueryParam(q url.Values) string {
	for _, key := range listProductsParams {
		if vals, ok := q[key]; ok && (len(vals) == 0 || strings.TrimSpace(vals[0]) == "") {
			return key
		}
	}
	return ""
}
