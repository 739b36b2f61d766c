package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	TenantIDKey ContextKey = "tenant_id"
)

type AuditAction string

const (
	AuditActionGrant       AuditAction = "GRANT"
	AuditActionRevoke      AuditAction = "REVOKE"
	AuditActionDelete      AuditAction = "DELETE"
	AuditActionLevelUpdate AuditAction = "LEVEL_UPDATE"
	AuditActionLevelReset  AuditAction = "LEVEL_RESET"
	AuditActionExport      AuditAction = "EXPORT"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID  primitive.ObjectID `bson:"tenant_id,omitempty" json:"tenant_id,omitempty"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`       // "field_permission" | "staff_field_permissions"
	RecordID  string             `bson:"record_id" json:"record_id"` // Grant ID or staff ID
	ActorID   int64              `bson:"actor_id" json:"actor_id"`   // 0 = system
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

type Log struct {
	AppID        string    `bson:"app_id" json:"app_id"`
	Message      string    `bson:"message" json:"message"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	IpAddress    string    `bson:"ip_address" json:"ip_address"`
	StaffID      int64     `bson:"staff_id,omitempty" json:"staff_id,omitempty"`
	CustomerID   int64     `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
