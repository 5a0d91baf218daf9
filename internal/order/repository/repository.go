package repository

import (
	"context"

	"github.com/ridloal/cc-ecommerce/internal/order/domain"
)

type OrderRepository interface {
	// CreateOrder persists order and fills in its ID. CreatedOn must already be set.
	CreateOrder(ctx context.Context, order *domain.Order) error
	Ping(ctx context.Context) error
}
