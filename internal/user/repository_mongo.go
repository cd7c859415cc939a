package user

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(usersCollection)}
}

type userDoc struct {
	ID        int    `bson:"user_id"`
	Email     string `bson:"email"`
	Password  string `bson:"password"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	CreatedAt string `bson:"created_at"`
}

func (r *MongoRepository) GetByID(ctx context.Context, id int) (User, error) {
	return r.findOne(ctx, bson.M{"user_id": id})
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) Create(ctx context.Context, user User) (User, error) {
	if user.ID == 0 {
		id, err := r.nextID(ctx)
		if err != nil {
			return User{}, err
		}
		user.ID = id
	}

	doc := userDoc{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.Password,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (User, error) {
	var doc userDoc
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toUser(), nil
}

// nextID allocates user ids by walking past the current maximum. Fine at
// this scale; registration is not a hot path.
func (r *MongoRepository) nextID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.M{"user_id": -1})

	var doc userDoc
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, fmt.Errorf("failed to allocate user id: %w", err)
	}
	return doc.ID + 1, nil
}

func (d userDoc) toUser() User {
	return User{
		ID:        d.ID,
		Email:     d.Email,
		Password:  d.Password,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		CreatedAt: d.CreatedAt,
	}
}
