// internal/cache/redis.go
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var Client *redis.Client

// InitRedis connects the package-level client. The cache is optional; when
// Redis is unreachable every helper degrades to a no-op and reads fall
// through to the database.
func InitRedis(addr, password string, db int) {
	if addr == "" {
		logrus.Info("Redis not configured, caching disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, continuing without cache")
		Client = nil
		return
	}

	logrus.Info("Redis connected")
}

func Close() {
	if Client != nil {
		Client.Close()
		Client = nil
	}
}
