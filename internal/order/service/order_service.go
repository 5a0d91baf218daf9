package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ridloal/cc-ecommerce/internal/order/domain"
	"github.com/ridloal/cc-ecommerce/internal/order/repository"
	"github.com/ridloal/cc-ecommerce/internal/platform/events"
	"github.com/ridloal/cc-ecommerce/internal/platform/logger"
)

var (
	ErrInvalidOrder        = errors.New("invalid order")
	ErrOrderCreationFailed = errors.New("order creation failed")
)

type OrderService interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	Ping(ctx context.Context) error
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	publisher events.Publisher
	now       func() time.Time
}

func NewOrderService(or repository.OrderRepository, pub events.Publisher) OrderService {
	if pub == nil {
		pub = events.NewNoopPublisher()
	}
	return &orderServiceImpl{
		orderRepo: or,
		publisher: pub,
		now:       time.Now,
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrInvalidOrder)
	}
	if req.TotalAmount == nil || req.UserAddress == nil {
		return nil, fmt.Errorf("%w: total_amount and user_address are required", ErrInvalidOrder)
	}

	// Tidak ada validasi produk, stok, atau total terhadap harga produk.
	items := make([]domain.Item, len(req.Items))
	copy(items, req.Items)

	order := &domain.Order{
		CreatedOn:   s.now().UTC().Truncate(time.Millisecond), // presisi tanggal di Mongo = milidetik
		TotalAmount: *req.TotalAmount,
		UserAddress: *req.UserAddress,
		Items:       items,
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		logger.Error("CreateOrder: failed to save order to repository", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	logger.Info("Order created", "order_id", order.ID, "items", len(order.Items), "total_amount", order.TotalAmount.String())

	s.publishCreated(ctx, order)
	return order, nil
}

// publishCreated is best effort: the order is already stored, so a broker
// failure is logged and not returned.
func (s *orderServiceImpl) publishCreated(ctx context.Context, order *domain.Order) {
	evt, err := events.NewEvent(events.EventOrderCreated, order.ID, order)
	if err != nil {
		logger.Error("CreateOrder: failed to build order.created event", err, "order_id", order.ID)
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.Error("CreateOrder: failed to publish order.created event", err, "order_id", order.ID, "event_id", evt.EventID)
	}
}

func (s *orderServiceImpl) Ping(ctx context.Context) error {
	return s.orderRepo.Ping(ctx)
}
