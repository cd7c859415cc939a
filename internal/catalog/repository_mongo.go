package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection = "products"
	settingsCollection = "settings"
	configDocID        = "config"
)

type MongoRepository struct {
	products *mongo.Collection
	settings *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		products: db.Collection(productsCollection),
		settings: db.Collection(settingsCollection),
	}
}

// productDoc is the stored shape of an Item. Prices are kept as strings so
// the decimal value survives the round trip without float conversion.
type productDoc struct {
	ID          int       `bson:"id"`
	Title       string    `bson:"title"`
	Price       string    `bson:"price"`
	Description string    `bson:"description"`
	Category    string    `bson:"category"`
	Image       string    `bson:"image"`
	Rating      ratingDoc `bson:"rating"`
}

type ratingDoc struct {
	Rate  float64 `bson:"rate"`
	Count int     `bson:"count"`
}

type configDoc struct {
	ID           string `bson:"_id"`
	MaxProductID int    `bson:"maxProductId"`
}

func (r *MongoRepository) Insert(ctx context.Context, item Item) error {
	doc := productDoc{
		ID:          item.ID,
		Title:       item.Title,
		Price:       item.Price.String(),
		Description: item.Description,
		Category:    item.Category,
		Image:       item.Image,
		Rating:      ratingDoc{Rate: item.Rating.Rate, Count: item.Rating.Count},
	}
	if _, err := r.products.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *MongoRepository) MaxProductID(ctx context.Context) (int, error) {
	var cfg configDoc
	err := r.settings.FindOne(ctx, bson.M{"_id": configDocID}).Decode(&cfg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read product counter: %w", err)
	}
	return cfg.MaxProductID, nil
}

func (r *MongoRepository) SetMaxProductID(ctx context.Context, id int) error {
	filter := bson.M{"_id": configDocID}
	update := bson.M{"$set": bson.M{"maxProductId": id}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.settings.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to update product counter: %w", err)
	}
	return nil
}
