package cache

import (
	"context"
	"sync"
	"time"

	"psychopulse/internal/model"
)

// MemoryDashboardCache is an in-memory DashboardCache used by tests and
// local runs without Redis.
type MemoryDashboardCache struct {
	mu      sync.RWMutex
	entries map[string]*model.DashboardMetrics
}

// NewMemoryDashboardCache creates an empty in-memory dashboard cache
func NewMemoryDashboardCache() *MemoryDashboardCache {
	return &MemoryDashboardCache{entries: make(map[string]*model.DashboardMetrics)}
}

func (c *MemoryDashboardCache) Get(_ context.Context, userID string) (*model.DashboardMetrics, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[userID], nil
}

func (c *MemoryDashboardCache) Set(_ context.Context, userID string, metrics *model.DashboardMetrics) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = metrics
	return nil
}

func (c *MemoryDashboardCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}

// MemorySessionCache is an in-memory SessionCache
type MemorySessionCache struct {
	mu       sync.RWMutex
	sessions map[string]*model.SurveySession
}

// NewMemorySessionCache creates an empty in-memory session cache
func NewMemorySessionCache() *MemorySessionCache {
	return &MemorySessionCache{sessions: make(map[string]*model.SurveySession)}
}

func (c *MemorySessionCache) sessionKey(userID, sessionID string) string {
	return userID + ":" + sessionID
}

func (c *MemorySessionCache) Set(_ context.Context, session *model.SurveySession) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	session.UpdatedAt = time.Now()
	cp := *session
	c.sessions[c.sessionKey(session.UserID, session.ID)] = &cp
	return nil
}

func (c *MemorySessionCache) Get(_ context.Context, userID, sessionID string) (*model.SurveySession, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	session, ok := c.sessions[c.sessionKey(userID, sessionID)]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (c *MemorySessionCache) Delete(_ context.Context, userID, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, c.sessionKey(userID, sessionID))
	return nil
}
