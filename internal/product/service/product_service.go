package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ridloal/cc-ecommerce/internal/platform/logger"
	"github.com/ridloal/cc-ecommerce/internal/product/domain"
	"github.com/ridloal/cc-ecommerce/internal/product/repository"
)

var ErrInvalidQuery = errors.New("invalid product query")

type ProductService interface {
	ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error)
	Ping(ctx context.Context) error
}

type productServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productServiceImpl{repo: repo}
}

func (s *productServiceImpl) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	if q.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0, got %d", ErrInvalidQuery, q.Offset)
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be > 0, got %d", ErrInvalidQuery, q.Limit)
	}

	products, total, err := s.repo.ListProducts(ctx, q)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}

	logger.Debug("ListProducts: page served", "offset", q.Offset, "limit", q.Limit, "returned", len(products), "total", total)
	return &domain.ProductPage{
		Data: products,
		Page: domain.NewPage(total, q.Offset, q.Limit),
	}, nil
}

func (s *productServiceImpl) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
