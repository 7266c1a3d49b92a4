package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const (
	StatusUp       = "up"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

// Health pings the backing stores and reports each one's status
func Health(ctx context.Context, db *sqlx.DB, rdb *redis.Client) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"postgres": StatusDisabled, "redis": StatusDisabled}
	if db != nil {
		status["postgres"] = StatusUp
		if err := db.PingContext(ctx); err != nil {
			status["postgres"] = StatusDown
		}
	}
	if rdb != nil {
		status["redis"] = StatusUp
		if err := rdb.Ping(ctx).Err(); err != nil {
			status["redis"] = StatusDown
		}
	}
	return status
}

// Healthy reports whether no enabled store is down
func Healthy(status map[string]string) bool {
	for _, s := range status {
		if s == StatusDown {
			return false
		}
	}
	return true
}
