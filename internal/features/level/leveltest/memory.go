// Package leveltest provides an in-memory LevelRepository for tests.
package leveltest

import (
	"context"
	"sync"
	"time"

	"staff-acl/internal/features/level"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryLevelRepository struct {
	mu   sync.Mutex
	rows map[int64]level.LevelGrant
}

func NewMemoryLevelRepository() *MemoryLevelRepository {
	return &MemoryLevelRepository{rows: make(map[int64]level.LevelGrant)}
}

// Put stores g directly, replacing any existing row.
func (m *MemoryLevelRepository) Put(g *level.LevelGrant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[g.StaffID] = *g
}

func (m *MemoryLevelRepository) FindByStaff(ctx context.Context, staffID int64) (*level.LevelGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.rows[staffID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (m *MemoryLevelRepository) Insert(ctx context.Context, g *level.LevelGrant) (*level.LevelGrant, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.rows[g.StaffID]; ok {
		return &existing, false, nil
	}
	row := *g
	row.ID = primitive.NewObjectID()
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	m.rows[g.StaffID] = row
	return &row, true, nil
}

func (m *MemoryLevelRepository) Update(ctx context.Context, g *level.LevelGrant) (*level.LevelGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *g
	row.UpdatedAt = time.Now()
	m.rows[g.StaffID] = row
	return &row, nil
}

func (m *MemoryLevelRepository) Delete(ctx context.Context, staffID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[staffID]; !ok {
		return false, nil
	}
	delete(m.rows, staffID)
	return true, nil
}

func (m *MemoryLevelRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}
