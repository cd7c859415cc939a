package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kittipat-r/storefront-backend/internal/cart"
	"github.com/kittipat-r/storefront-backend/internal/catalog"
)

const ordersCollection = "orders"

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(ordersCollection)}
}

// orderDoc is the stored shape of an Order. Decimal amounts are kept as
// strings so they survive the round trip without float conversion.
type orderDoc struct {
	OrderID     string    `bson:"order_id"`
	UserID      string    `bson:"user_id"`
	Items       []lineDoc `bson:"items"`
	TotalItems  int       `bson:"total_items"`
	TotalAmount string    `bson:"total_amount"`
	Date        time.Time `bson:"date"`
}

type lineDoc struct {
	ID          int     `bson:"id"`
	Title       string  `bson:"title"`
	Price       string  `bson:"price"`
	Description string  `bson:"description"`
	Category    string  `bson:"category"`
	Image       string  `bson:"image"`
	RatingRate  float64 `bson:"rating_rate"`
	RatingCount int     `bson:"rating_count"`
	Quantity    int     `bson:"quantity"`
}

func (r *MongoRepository) Create(ctx context.Context, ord Order) (Order, error) {
	if _, err := r.collection.InsertOne(ctx, toDoc(ord)); err != nil {
		return Order{}, fmt.Errorf("failed to insert order: %w", err)
	}
	return ord, nil
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.M{"date": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]Order, 0, len(docs))
	for _, doc := range docs {
		ord, err := doc.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, nil
}

func toDoc(ord Order) orderDoc {
	items := make([]lineDoc, 0, len(ord.Items))
	for _, line := range ord.Items {
		items = append(items, lineDoc{
			ID:          line.ID,
			Title:       line.Title,
			Price:       line.Price.String(),
			Description: line.Description,
			Category:    line.Category,
			Image:       line.Image,
			RatingRate:  line.Rating.Rate,
			RatingCount: line.Rating.Count,
			Quantity:    line.Quantity,
		})
	}
	return orderDoc{
		OrderID:     ord.ID,
		UserID:      ord.UserID,
		Items:       items,
		TotalItems:  ord.TotalItems,
		TotalAmount: ord.TotalAmount.String(),
		Date:        ord.Date,
	}
}

func (d orderDoc) toOrder() (Order, error) {
	total, err := decimal.NewFromString(d.TotalAmount)
	if err != nil {
		return Order{}, fmt.Errorf("bad stored total %q: %w", d.TotalAmount, err)
	}

	items := make([]cart.Line, 0, len(d.Items))
	for _, l := range d.Items {
		price, err := decimal.NewFromString(l.Price)
		if err != nil {
			return Order{}, fmt.Errorf("bad stored price %q: %w", l.Price, err)
		}
		items = append(items, cart.Line{
			Item: catalog.Item{
				ID:          l.ID,
				Title:       l.Title,
				Price:       price,
				Description: l.Description,
				Category:    l.Category,
				Image:       l.Image,
				Rating:      catalog.Rating{Rate: l.RatingRate, Count: l.RatingCount},
			},
			Quantity: l.Quantity,
		})
	}

	return Order{
		ID:          d.OrderID,
		UserID:      d.UserID,
		Items:       items,
		TotalItems:  d.TotalItems,
		TotalAmount: total,
		Date:        d.Date,
	}, nil
}
