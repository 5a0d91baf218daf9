package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ridloal/cc-ecommerce/internal/order/domain"
	"github.com/ridloal/cc-ecommerce/internal/platform/logger"
)

const ordersCollection = "orders"

type itemDocument struct {
	ProductID      string `bson:"productId"`
	BoughtQuantity int    `bson:"boughtQuantity"`
}

type addressDocument struct {
	City    string `bson:"city"`
	Country string `bson:"country"`
	ZipCode string `bson:"zip_code"`
}

type orderDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	CreatedOn   time.Time            `bson:"createdOn"`
	TotalAmount primitive.Decimal128 `bson:"total_amount"`
	UserAddress addressDocument      `bson:"user_address"`
	Items       []itemDocument       `bson:"items"`
}

type mongoOrderRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{db: db, coll: db.Collection(ordersCollection)}
}

func (r *mongoOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	doc, err := toOrderDocument(order)
	if err != nil {
		return err
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		logger.Error("CreateOrder: insert failed", err)
		return err
	}
	order.ID = doc.ID.Hex()
	return nil
}

func (r *mongoOrderRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

func toOrderDocument(order *domain.Order) (orderDocument, error) {
	amount, err := toDecimal128(order.TotalAmount)
	if err != nil {
		return orderDocument{}, err
	}
	items := make([]itemDocument, len(order.Items))
	for i, it := range order.Items {
		items[i] = itemDocument{ProductID: it.ProductID, BoughtQuantity: it.BoughtQuantity}
	}
	return orderDocument{
		ID:          primitive.NewObjectID(),
		CreatedOn:   order.CreatedOn,
		TotalAmount: amount,
		UserAddress: addressDocument{
			City:    order.UserAddress.City,
			Country: order.UserAddress.Country,
			ZipCode: order.UserAddress.ZipCode,
		},
		Items: items,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("total_amount %s out of range: %w", d.String(), err)
	}
	return v, nil
}
