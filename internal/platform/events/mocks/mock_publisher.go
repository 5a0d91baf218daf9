package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/cc-ecommerce/internal/platform/events"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt events.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
