package professionalRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"velora/models"

	"github.com/go-redis/redis/v8"
)

const settingsCachePrefix = "lastMinuteSettings:"

// CachedSettingsSource is an explicit, injected read-through cache for
// last-minute settings snapshots. It wraps the mongo repository with a
// redis TTL cache; entries expire on their own and are invalidated when a
// professional saves new settings.
type CachedSettingsSource struct {
	repo   ProfessionalRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedSettingsSource constructs a settings cache with the given expiry.
func NewCachedSettingsSource(repo ProfessionalRepository, client *redis.Client, ttl time.Duration) *CachedSettingsSource {
	return &CachedSettingsSource{repo: repo, client: client, ttl: ttl}
}

// Get returns the cached snapshot when present, falling back to the
// repository and populating the cache on a miss. Cache failures degrade to a
// repository read, never to a request failure.
func (c *CachedSettingsSource) Get(ctx context.Context, professionalID string) (*models.LastMinuteSettings, error) {
	key := settingsCachePrefix + professionalID

	if data, err := c.client.Get(ctx, key).Result(); err == nil {
		var settings models.LastMinuteSettings
		if err := json.Unmarshal([]byte(data), &settings); err == nil {
			return &settings, nil
		}
		// Unparseable entry: drop it and fall through to the repository.
		c.client.Del(ctx, key)
	}

	settings, err := c.repo.GetLastMinuteSettings(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(settings); err == nil {
		c.client.Set(ctx, key, data, c.ttl)
	}
	return settings, nil
}

// Invalidate removes the cached snapshot for a professional.
func (c *CachedSettingsSource) Invalidate(ctx context.Context, professionalID string) error {
	if err := c.client.Del(ctx, settingsCachePrefix+professionalID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate settings cache for %s: %w", professionalID, err)
	}
	return nil
}
