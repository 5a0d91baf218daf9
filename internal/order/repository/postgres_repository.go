package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ridloal/cc-ecommerce/internal/order/domain"
	"github.com/ridloal/cc-ecommerce/internal/platform/logger"
)

const (
	insertOrderQuery = `INSERT INTO orders (id, created_on, total_amount, city, country, zip_code)
                   VALUES ($1, $2, $3, $4, $5, $6)`

	// Items are written in one statement; WITH ORDINALITY keeps request order.
	insertItemsQuery = `INSERT INTO order_items (order_id, position, product_id, bought_quantity)
                   SELECT $1, t.position, t.product_id, t.bought_quantity
                   FROM unnest($2::text[], $3::int[]) WITH ORDINALITY AS t(product_id, bought_quantity, position)`
)

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

// CreateOrder menyimpan order dan item-itemnya dalam satu transaksi.
func (r *postgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("CreateOrder: failed to begin tx", err)
		return err
	}
	defer tx.Rollback() // Rollback jika tidak di-commit

	id := uuid.New()
	_, err = tx.ExecContext(ctx, insertOrderQuery,
		id, order.CreatedOn, order.TotalAmount,
		order.UserAddress.City, order.UserAddress.Country, order.UserAddress.ZipCode)
	if err != nil {
		logger.Error("CreateOrder: failed to insert order", err)
		return err
	}

	productIDs := make([]string, len(order.Items))
	quantities := make([]int64, len(order.Items))
	for i, it := range order.Items {
		productIDs[i] = it.ProductID
		quantities[i] = int64(it.BoughtQuantity)
	}
	if _, err = tx.ExecContext(ctx, insertItemsQuery, id, pq.Array(productIDs), pq.Array(quantities)); err != nil {
		logger.Error("CreateOrder: failed to insert order items", err, "items", len(order.Items))
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("CreateOrder: commit failed", err)
		return err
	}
	order.ID = id.String()
	return nil
}

func (r *postgresOrderRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
