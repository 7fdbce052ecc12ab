package initializers

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// Redis holds session-scoped cart and buy-now selections. They are
// ephemeral by design: lost on expiry, never shared across devices.
func ConnectRedis(config *Config) {
	opt, err := redis.ParseURL(config.RedisUri)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	if err := RedisClient.Ping(Ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	log.Println("Connected to redis successfully")
}
