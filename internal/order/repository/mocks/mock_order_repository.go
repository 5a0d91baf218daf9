package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/cc-ecommerce/internal/order/domain"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	if order != nil && args.Error(0) == nil {
		order.ID = "mock-order-id"
	}
	return args.Error(0)
}

func (m *MockOrderRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
