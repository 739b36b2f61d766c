// Package permissiontest provides an in-memory GrantRepository for tests.
package permissiontest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"staff-acl/internal/common/apperr"
	"staff-acl/internal/features/permission"
	"staff-acl/internal/features/scope"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type identity struct {
	staffID    int64
	scope      scope.Scope
	customerID int64
	global     bool
}

func identityOf(staffID int64, s scope.Scope, customerID *int64) identity {
	if customerID == nil {
		return identity{staffID: staffID, scope: s, global: true}
	}
	return identity{staffID: staffID, scope: s, customerID: *customerID}
}

// MemoryGrantRepository keeps grants in a map keyed by identity. Tenants are ignored.
type MemoryGrantRepository struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]*permission.ScopedGrant
	ids  map[identity]primitive.ObjectID

	// FailUpsertAfter makes the n+1th Upsert fail when positive.
	FailUpsertAfter int
	upserts         int
}

func NewMemoryGrantRepository() *MemoryGrantRepository {
	return &MemoryGrantRepository{
		rows: make(map[primitive.ObjectID]*permission.ScopedGrant),
		ids:  make(map[identity]primitive.ObjectID),
	}
}

// Put stores g as-is, overwriting any row with the same identity.
func (m *MemoryGrantRepository) Put(g permission.ScopedGrant) *permission.ScopedGrant {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := identityOf(g.StaffID, g.Scope, g.CustomerID)
	if id, ok := m.ids[key]; ok {
		g.ID = id
	} else if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	m.ids[key] = g.ID
	m.rows[g.ID] = &g
	return clone(&g)
}

func (m *MemoryGrantRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func clone(g *permission.ScopedGrant) *permission.ScopedGrant {
	c := *g
	if g.CustomerID != nil {
		id := *g.CustomerID
		c.CustomerID = &id
	}
	return &c
}

func (m *MemoryGrantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*permission.ScopedGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("%w: grant %s", apperr.ErrNotFound, id.Hex())
	}
	return clone(g), nil
}

func (m *MemoryGrantRepository) filter(keep func(*permission.ScopedGrant) bool) []permission.ScopedGrant {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []permission.ScopedGrant
	for _, g := range m.rows {
		if keep(g) {
			out = append(out, *clone(g))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return customerKey(out[i].CustomerID) < customerKey(out[j].CustomerID)
	})
	return out
}

func customerKey(id *int64) int64 {
	if id == nil {
		return -1
	}
	return *id
}

func (m *MemoryGrantRepository) FindByStaff(ctx context.Context, staffID int64) ([]permission.ScopedGrant, error) {
	return m.filter(func(g *permission.ScopedGrant) bool { return g.StaffID == staffID }), nil
}

func (m *MemoryGrantRepository) FindByStaffAndScope(ctx context.Context, staffID int64, s scope.Scope) ([]permission.ScopedGrant, error) {
	return m.filter(func(g *permission.ScopedGrant) bool { return g.StaffID == staffID && g.Scope == s }), nil
}

func (m *MemoryGrantRepository) Upsert(ctx context.Context, g *permission.ScopedGrant) (*permission.ScopedGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUpsertAfter > 0 && m.upserts >= m.FailUpsertAfter {
		return nil, fmt.Errorf("upsert %d refused", m.upserts+1)
	}
	m.upserts++

	now := time.Now()
	key := identityOf(g.StaffID, g.Scope, g.CustomerID)
	if id, ok := m.ids[key]; ok {
		row := m.rows[id]
		row.Granted = g.Granted
		row.GrantedBy = g.GrantedBy
		row.GrantedAt = g.GrantedAt
		row.ExpiresAt = g.ExpiresAt
		row.Notes = g.Notes
		row.UpdatedAt = now
		return clone(row), nil
	}

	row := clone(g)
	row.ID = primitive.NewObjectID()
	row.CreatedAt = now
	row.UpdatedAt = now
	m.ids[key] = row.ID
	m.rows[row.ID] = row
	return clone(row), nil
}

func (m *MemoryGrantRepository) SetGranted(ctx context.Context, id primitive.ObjectID, granted bool) (*permission.ScopedGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("%w: grant %s", apperr.ErrNotFound, id.Hex())
	}
	row.Granted = granted
	row.UpdatedAt = time.Now()
	return clone(row), nil
}

func (m *MemoryGrantRepository) RevokeIdentity(ctx context.Context, staffID int64, s scope.Scope, customerID *int64) (*permission.ScopedGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.ids[identityOf(staffID, s, customerID)]
	if !ok {
		return nil, nil
	}
	row := m.rows[id]
	row.Granted = false
	row.UpdatedAt = time.Now()
	return clone(row), nil
}

func (m *MemoryGrantRepository) revokeWhere(keep func(*permission.ScopedGrant) bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, row := range m.rows {
		if row.Granted && keep(row) {
			row.Granted = false
			row.UpdatedAt = time.Now()
			n++
		}
	}
	return n
}

func (m *MemoryGrantRepository) RevokeByStaff(ctx context.Context, staffID int64) (int64, error) {
	return m.revokeWhere(func(g *permission.ScopedGrant) bool { return g.StaffID == staffID }), nil
}

func (m *MemoryGrantRepository) RevokeByStaffAndCustomer(ctx context.Context, staffID, customerID int64) (int64, error) {
	return m.revokeWhere(func(g *permission.ScopedGrant) bool {
		return g.StaffID == staffID && g.CustomerID != nil && *g.CustomerID == customerID
	}), nil
}

func (m *MemoryGrantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("%w: grant %s", apperr.ErrNotFound, id.Hex())
	}
	delete(m.ids, identityOf(row.StaffID, row.Scope, row.CustomerID))
	delete(m.rows, id)
	return nil
}

func (m *MemoryGrantRepository) CountExpiredActive(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, row := range m.rows {
		if row.Granted && row.ExpiresAt != nil && !row.ExpiresAt.After(now) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryGrantRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}
