package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr           string
	MongoURI       string
	MongoDatabase  string
	RedisAddr      string
	CatalogBaseURL string
	JWTSecret      string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:           getEnv("STOREFRONT_ADDR", ":8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "https://fakestoreapi.com"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
