package redis

import (
	"context"
	"os"

	"github.com/go-redis/redis/v9"
)

func CreateTestClient() *redis.Client {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		panic("TEST_REDIS_URL must be set.")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		panic("Could not parse Redis URL.")
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		panic("Could not connect to Redis.")
	}
	return client
}

func FlushAll(client *redis.Client) {
	if err := client.FlushAll(context.Background()).Err(); err != nil {
		panic("Could not flush Redis.")
	}
}
