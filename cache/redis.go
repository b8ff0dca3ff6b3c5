package cache

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

const nodeKeyPrefix = "pitchgraph:node:"

// Connect wires the optional enrichment cache. Callers treat a nil client as
// "cache disabled"; enrichment works without it.
func Connect() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	if err != nil {
		Redis = nil
	}
	return err
}

func Close() {
	if Redis != nil {
		Redis.Close()
	}
}

func Enabled() bool {
	return Redis != nil
}

func nodeKey(name, nodeType string) string {
	return nodeKeyPrefix + nodeType + ":" + strings.ToLower(name)
}

// GetNode returns the cached enrichment payload for an entity, if any.
func GetNode(name, nodeType string) ([]byte, bool) {
	if Redis == nil {
		return nil, false
	}
	data, err := Redis.Get(Ctx, nodeKey(name, nodeType)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func SetNode(name, nodeType string, data []byte, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	return Redis.Set(Ctx, nodeKey(name, nodeType), data, ttl).Err()
}
