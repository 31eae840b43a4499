package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus reports the reachability of the scheduling core's backing
// services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Cache     bool      `json:"cache"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings mongo and the redis cache once a minute and keeps
// the latest snapshot in memory for the health endpoint.
func StartHealthMonitor(cache *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			status := HealthStatus{
				Mongo:     mongoClient.Ping(ctx, nil) == nil,
				Cache:     cache.Ping(ctx).Err() == nil,
				CheckedAt: time.Now().UTC(),
			}
			cancel()

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}
