package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kittipat-r/storefront-backend/internal/cart"
	"github.com/kittipat-r/storefront-backend/internal/catalog"
	"github.com/kittipat-r/storefront-backend/internal/config"
	"github.com/kittipat-r/storefront-backend/internal/order"
	"github.com/kittipat-r/storefront-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	ctx := context.Background()
	db := mustConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	// cart: anonymous, session-scoped, snapshots in Redis
	cartManager := cart.NewManager(cart.NewRedisSnapshotter(rdb))
	cartHandler := cart.NewHandler(cartManager)

	// catalog: public API reads through a Redis cache, creation in Mongo
	catalogService := catalog.NewService(
		catalog.NewClient(cfg.CatalogBaseURL),
		catalog.NewRedisCache(rdb),
		catalog.NewMongoRepository(db),
	)
	catalogHandler := catalog.NewHandler(catalogService)

	userService := user.NewService(user.NewMongoRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	orderService := order.NewService(order.NewMongoRepository(db))
	orderHandler := order.NewHandler(orderService, cartManager)

	// public routes go first so they bypass the JWT gate below
	userHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	catalogHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustConnectMongo(ctx context.Context, uri, database string) *mongo.Database {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	return client.Database(database)
}
