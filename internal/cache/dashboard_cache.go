package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"psychopulse/internal/model"
)

// DashboardCache handles Redis operations for derived dashboard metrics.
// Metrics are invalidated whenever a new result is appended to the
// user's history.
type DashboardCache interface {
	Get(ctx context.Context, userID string) (*model.DashboardMetrics, error)
	Set(ctx context.Context, userID string, metrics *model.DashboardMetrics) error
	Invalidate(ctx context.Context, userID string) error
}

type dashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache creates a new dashboard cache
func NewDashboardCache(client *redis.Client) DashboardCache {
	return &dashboardCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *dashboardCache) key(userID string) string {
	return fmt.Sprintf("user:%s:dashboard", userID)
}

func (c *dashboardCache) Get(ctx context.Context, userID string) (*model.DashboardMetrics, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var metrics model.DashboardMetrics
	if err := json.Unmarshal([]byte(data), &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

func (c *dashboardCache) Set(ctx context.Context, userID string, metrics *model.DashboardMetrics) error {
	data, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, c.ttl).Err()
}

func (c *dashboardCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
