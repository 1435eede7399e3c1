package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"psychopulse/internal/model"
)

// SessionCache handles Redis operations for in-progress survey sessions.
// Sessions expire after 24 hours; completed sessions are deleted when
// their result is appended.
type SessionCache interface {
	Set(ctx context.Context, session *model.SurveySession) error
	Get(ctx context.Context, userID, sessionID string) (*model.SurveySession, error)
	Delete(ctx context.Context, userID, sessionID string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *sessionCache) key(userID, sessionID string) string {
	return fmt.Sprintf("user:%s:session:%s", userID, sessionID)
}

func (c *sessionCache) Set(ctx context.Context, session *model.SurveySession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.UserID, session.ID), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, userID, sessionID string) (*model.SurveySession, error) {
	data, err := c.client.Get(ctx, c.key(userID, sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.SurveySession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, userID, sessionID string) error {
	return c.client.Del(ctx, c.key(userID, sessionID)).Err()
}
