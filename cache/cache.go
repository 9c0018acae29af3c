package cache

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	ctx    = context.Background()
)

const (
	productListKey  = "products:all"
	ProductCacheTTL = 60 * time.Second
)

// Init connects to Redis if REDIS_HOST is set. The cache is optional: every
// helper below degrades to a no-op when no client is configured.
func Init() {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		log.Println("⚠️ REDIS_HOST not set, product cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("⚠️ Redis unreachable, product cache disabled:", err)
		return
	}

	Client = client
	log.Println("✅ Redis connected")
}

// GetProductList returns the cached product list payload, if any.
func GetProductList() ([]byte, bool) {
	if Client == nil {
		return nil, false
	}
	data, err := Client.Get(ctx, productListKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetProductList stores the serialized product list.
func SetProductList(data []byte) {
	if Client == nil {
		return
	}
	if err := Client.Set(ctx, productListKey, data, ProductCacheTTL).Err(); err != nil {
		log.Println("⚠️ Failed to cache product list:", err)
	}
}

// InvalidateProducts drops the cached list after any catalog write.
func InvalidateProducts() {
	if Client == nil {
		return
	}
	if err := Client.Del(ctx, productListKey).Err(); err != nil {
		log.Println("⚠️ Failed to invalidate product cache:", err)
	}
}
