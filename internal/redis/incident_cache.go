package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"highwayMonitor/internal/domain"
)

const activeIncidentsKey = "incidents:active"

// IncidentCache holds the dashboard's active-incident list.
type IncidentCache struct {
	client goredis.Cmdable
	key    string
}

func NewIncidentCache(client goredis.Cmdable) *IncidentCache {
	return &IncidentCache{
		client: client,
		key:    activeIncidentsKey,
	}
}

// GetActive returns nil on a cache miss.
func (c *IncidentCache) GetActive(ctx context.Context) ([]*domain.Incident, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	incidents := make([]*domain.Incident, 0)
	if err := json.Unmarshal(data, &incidents); err != nil {
		return nil, err
	}

	return incidents, nil
}

func (c *IncidentCache) SetActive(ctx context.Context, incidents []*domain.Incident, ttl time.Duration) error {
	if incidents == nil {
		incidents = []*domain.Incident{}
	}
	b, err := json.Marshal(incidents)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}

// Invalidate drops the cached list. Any lifecycle event can change it.
func (c *IncidentCache) Invalidate(ctx context.Context, _ domain.Event) error {
	return c.client.Del(ctx, c.key).Err()
}
