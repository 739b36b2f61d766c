package database

import (
	"context"

	"staff-acl/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TenantID reads the tenant set by the auth middleware. ok is false for
// system calls (seeders, cron) that run without a tenant.
func TenantID(ctx context.Context) (primitive.ObjectID, bool) {
	raw, ok := ctx.Value(models.TenantIDKey).(string)
	if !ok || raw == "" {
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
