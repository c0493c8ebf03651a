package cache

import (
	"context"
	"log"
	"time"

	"lms/config"

	goredis "github.com/redis/go-redis/v9"
)

// Client is the global redis client. Nil when REDIS_ADDR is not configured,
// in which case every helper is a no-op and the catalog is served from the DB.
var Client *goredis.Client

const (
	catalogKey = "courses:catalog"
	catalogTTL = 5 * time.Minute
)

// Connect dials redis if configured. The cache is optional: a missing or
// unreachable redis only disables caching.
func Connect() {
	addr := config.AppConfig.RedisAddr
	if addr == "" {
		log.Println("[CACHE] REDIS_ADDR not set, catalog cache disabled")
		return
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[CACHE] redis ping failed, catalog cache disabled: %v", err)
		_ = rdb.Close()
		return
	}

	Client = rdb
	log.Printf("[CACHE] connected to redis at %s", addr)
}

// GetCatalog returns the cached default catalog page, or "" on miss
func GetCatalog(ctx context.Context) string {
	if Client == nil {
		return ""
	}
	val, err := Client.Get(ctx, catalogKey).Result()
	if err != nil {
		return ""
	}
	return val
}

// SetCatalog stores the serialized default catalog page
func SetCatalog(ctx context.Context, payload []byte) {
	if Client == nil {
		return
	}
	if err := Client.Set(ctx, catalogKey, payload, catalogTTL).Err(); err != nil {
		log.Printf("[CACHE] failed to store catalog: %v", err)
	}
}

// InvalidateCatalog drops the cached catalog after a course write
func InvalidateCatalog(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Del(ctx, catalogKey).Err(); err != nil {
		log.Printf("[CACHE] failed to invalidate catalog: %v", err)
	}
}
