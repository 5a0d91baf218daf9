package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ridloal/cc-ecommerce/internal/platform/logger"
	"github.com/ridloal/cc-ecommerce/internal/product/domain"
)

const productsCollection = "products"

type productDocument struct {
	ID       interface{} `bson:"id"`
	Name     string      `bson:"name"`
	Price    float64     `bson:"price"`
	Quantity int         `bson:"quantity"`
}

type countDocument struct {
	Count int64 `bson:"count"`
}

// listFacet mirrors the $facet stage output: one page of data and the overall count.
type listFacet struct {
	Data  []productDocument `bson:"data"`
	Total []countDocument   `bson:"total"`
}

type mongoProductRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{db: db, coll: db.Collection(productsCollection)}
}

func (r *mongoProductRepository) ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int64, error) {
	cursor, err := r.coll.Aggregate(ctx, buildListPipeline(q))
	if err != nil {
		logger.Error("ListProducts: aggregate failed", err, "offset", q.Offset, "limit", q.Limit)
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var facets []listFacet
	if err := cursor.All(ctx, &facets); err != nil {
		logger.Error("ListProducts: decode failed", err)
		return nil, 0, err
	}

	products := []domain.Product{}
	if len(facets) == 0 {
		return products, 0, nil
	}
	for _, d := range facets[0].Data {
		products = append(products, domain.Product{
			ID:       idString(d.ID),
			Name:     d.Name,
			Price:    d.Price,
			Quantity: d.Quantity,
		})
	}
	var total int64
	if len(facets[0].Total) > 0 {
		total = facets[0].Total[0].Count
	}
	return products, total, nil
}

func (r *mongoProductRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

// buildListPipeline filters by the supplied price bounds, sorts by _id for a
// stable order and fans out into the page window and the total count.
func buildListPipeline(q domain.ProductQuery) mongo.Pipeline {
	pipeline := mongo.Pipeline{}

	if price := priceRange(q); len(price) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{{Key: "price", Value: price}}}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		bson.D{{Key: "$facet", Value: bson.D{
			{Key: "data", Value: bson.A{
				bson.D{{Key: "$skip", Value: int64(q.Offset)}},
				bson.D{{Key: "$limit", Value: int64(q.Limit)}},
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "_id", Value: 0},
					{Key: "id", Value: "$_id"},
					{Key: "name", Value: 1},
					{Key: "price", Value: 1},
					{Key: "quantity", Value: "$available_qty"},
				}}},
			}},
			{Key: "total", Value: bson.A{
				bson.D{{Key: "$count", Value: "count"}},
			}},
		}}},
	)
	return pipeline
}

func priceRange(q domain.ProductQuery) bson.D {
	price := bson.D{}
	if q.MinPrice != nil {
		price = append(price, bson.E{Key: "$gte", Value: *q.MinPrice})
	}
	if q.MaxPrice != nil {
		price = append(price, bson.E{Key: "$lte", Value: *q.MaxPrice})
	}
	return price
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}
