package repository

import (
	"context"

	"github.com/ridloal/cc-ecommerce/internal/product/domain"
)

type ProductRepository interface {
	// ListProducts returns the requested window of products matching q's price
	// bounds, ordered by id, together with the count of all matches.
	ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int64, error)
	Ping(ctx context.Context) error
}
