package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// total_amount is a JSON number on the wire, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

type Item struct {
	ProductID      string `json:"productId" binding:"required"`
	BoughtQuantity int    `json:"boughtQuantity" binding:"gt=0"`
}

type UserAddress struct {
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
	ZipCode string `json:"zip_code" binding:"required"`
}

// Order is immutable once stored. TotalAmount is kept as supplied by the
// client; it is never recomputed from item prices.
type Order struct {
	ID          string          `json:"id"`
	CreatedOn   time.Time       `json:"createdOn"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	UserAddress UserAddress     `json:"user_address"`
	Items       []Item          `json:"items"`
}

// Untuk request pembuatan order
type CreateOrderRequest struct {
	Items       []Item           `json:"items" binding:"required,min=1,dive"`
	TotalAmount *decimal.Decimal `json:"total_amount" binding:"required"`
	UserAddress *UserAddress     `json:"user_address" binding:"required"`
}
