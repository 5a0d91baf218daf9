package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ridloal/cc-ecommerce/internal/platform/logger"
	"github.com/ridloal/cc-ecommerce/internal/product/domain"
)

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int64, error) {
	where, args := priceWhereClause(q)

	var total int64
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("ListProducts: count failed", err)
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT id, name, price, available_qty FROM products%s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, 0, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity); err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListProducts: rows iteration error", err)
		return nil, 0, err
	}
	return products, total, nil
}

func (r *postgresProductRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// priceWhereClause returns a WHERE clause with positional placeholders for
// the supplied bounds only, or an empty string when neither is set.
func priceWhereClause(q domain.ProductQuery) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if q.MinPrice != nil {
		args = append(args, *q.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if q.MaxPrice != nil {
		args = append(args, *q.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
