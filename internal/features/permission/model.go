package permission

import (
	"time"

	"staff-acl/internal/features/scope"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScopedGrant asserts that a staff member may exercise one scope, either for every
// customer (CustomerID == nil) or for a single customer, optionally until ExpiresAt.
// Rows are never removed on revoke; Granted is flipped instead so the audit fields survive.
type ScopedGrant struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TenantID   primitive.ObjectID `json:"tenant_id,omitempty" bson:"tenant_id,omitempty"`
	StaffID    int64              `json:"staff_id" bson:"staff_id"`
	Scope      scope.Scope        `json:"scope" bson:"scope"`
	CustomerID *int64             `json:"customer_id" bson:"customer_id"` // nil = all customers
	Granted    bool               `json:"granted" bson:"granted"`
	GrantedBy  int64              `json:"granted_by" bson:"granted_by"`
	GrantedAt  time.Time          `json:"granted_at" bson:"granted_at"`
	ExpiresAt  *time.Time         `json:"expires_at" bson:"expires_at"`
	Notes      string             `json:"notes,omitempty" bson:"notes"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsValid reports whether the grant is active and unexpired at now.
func (g *ScopedGrant) IsValid(now time.Time) bool {
	return g.Granted && (g.ExpiresAt == nil || g.ExpiresAt.After(now))
}

// AppliesTo reports whether the grant covers customerID. A global grant covers
// everything, including requests made without a customer.
func (g *ScopedGrant) AppliesTo(customerID *int64) bool {
	if g.CustomerID == nil {
		return true
	}
	return customerID != nil && *g.CustomerID == *customerID
}

func (g *ScopedGrant) IsGlobal() bool {
	return g.CustomerID == nil
}

// GrantRequest creates or re-activates one (staff, scope, customer) identity.
type GrantRequest struct {
	StaffID    int64      `json:"staff_id" validate:"required,gt=0"`
	Scope      string     `json:"scope" validate:"required"`
	CustomerID *int64     `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Notes      string     `json:"notes,omitempty" validate:"max=500"`
}

// BulkGrantRequest grants every scope to every customer. With no customers each
// scope is granted globally.
type BulkGrantRequest struct {
	StaffID     int64      `json:"staff_id" validate:"required,gt=0"`
	Scopes      []string   `json:"scopes" validate:"required,min=1,dive,required"`
	CustomerIDs []int64    `json:"customer_ids,omitempty" validate:"omitempty,dive,gt=0"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Notes       string     `json:"notes,omitempty" validate:"max=500"`
}

// BulkRevokeRequest revokes every scope for every customer, or the global rows when CustomerIDs is empty.
type BulkRevokeRequest struct {
	StaffID     int64    `json:"staff_id" validate:"required,gt=0"`
	Scopes      []string `json:"scopes" validate:"required,min=1,dive,required"`
	CustomerIDs []int64  `json:"customer_ids,omitempty" validate:"omitempty,dive,gt=0"`
}
