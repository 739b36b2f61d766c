package directory

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Staff is the subset of a staff account the permission engine reads.
type Staff struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TenantID  primitive.ObjectID `bson:"tenant_id,omitempty" json:"tenant_id,omitempty"`
	ID        int64              `bson:"staff_id" json:"id"`
	FullName  string             `bson:"full_name" json:"full_name"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"` // active, inactive
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

func (s *Staff) IsAdministrator() bool {
	return s.Role == RoleAdmin || s.Role == RoleManager
}

// Customer is the subset of a customer record the permission engine reads.
type Customer struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TenantID primitive.ObjectID `bson:"tenant_id,omitempty" json:"tenant_id,omitempty"`
	ID       int64              `bson:"customer_id" json:"id"`
	FullName string             `bson:"full_name" json:"full_name"`
}
