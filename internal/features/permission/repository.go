package permission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staff-acl/internal/common/apperr"
	"staff-acl/internal/database"
	"staff-acl/internal/features/scope"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GrantRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*ScopedGrant, error)
	FindByStaff(ctx context.Context, staffID int64) ([]ScopedGrant, error)
	FindByStaffAndScope(ctx context.Context, staffID int64, s scope.Scope) ([]ScopedGrant, error)
	// Upsert writes g keyed by (tenant, staff, scope, customer) and returns the stored row.
	Upsert(ctx context.Context, g *ScopedGrant) (*ScopedGrant, error)
	SetGranted(ctx context.Context, id primitive.ObjectID, granted bool) (*ScopedGrant, error)
	// RevokeIdentity returns nil when no row exists for the identity.
	RevokeIdentity(ctx context.Context, staffID int64, s scope.Scope, customerID *int64) (*ScopedGrant, error)
	RevokeByStaff(ctx context.Context, staffID int64) (int64, error)
	RevokeByStaffAndCustomer(ctx context.Context, staffID, customerID int64) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountExpiredActive(ctx context.Context, now time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type GrantRepositoryImpl struct {
	collection *mongo.Collection
}

func NewGrantRepository(mongodb *database.MongodbDB) GrantRepository {
	return &GrantRepositoryImpl{
		collection: mongodb.DB.Collection("field_permissions"),
	}
}

func (r *GrantRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenant_id", Value: 1},
				{Key: "staff_id", Value: 1},
				{Key: "scope", Value: 1},
				{Key: "customer_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("grant_identity"),
		},
		{
			Keys:    bson.D{{Key: "granted", Value: 1}, {Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("grant_expiry"),
		},
	})
	return err
}

// scoped adds the tenant of the request to filter.
func scoped(ctx context.Context, filter bson.M) bson.M {
	if tenantID, ok := database.TenantID(ctx); ok {
		filter["tenant_id"] = tenantID
	}
	return filter
}

func (r *GrantRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*ScopedGrant, error) {
	var grant ScopedGrant
	err := r.collection.FindOne(ctx, scoped(ctx, bson.M{"_id": id})).Decode(&grant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: grant %s", apperr.ErrNotFound, id.Hex())
		}
		return nil, err
	}
	return &grant, nil
}

func (r *GrantRepositoryImpl) find(ctx context.Context, filter bson.M) ([]ScopedGrant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scope", Value: 1}, {Key: "customer_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, scoped(ctx, filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grants []ScopedGrant
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *GrantRepositoryImpl) FindByStaff(ctx context.Context, staffID int64) ([]ScopedGrant, error) {
	return r.find(ctx, bson.M{"staff_id": staffID})
}

func (r *GrantRepositoryImpl) FindByStaffAndScope(ctx context.Context, staffID int64, s scope.Scope) ([]ScopedGrant, error) {
	return r.find(ctx, bson.M{"staff_id": staffID, "scope": s})
}

func identityFilter(ctx context.Context, staffID int64, s scope.Scope, customerID *int64) bson.M {
	// A nil customer encodes as null, which only matches global rows
	return scoped(ctx, bson.M{
		"staff_id":    staffID,
		"scope":       s,
		"customer_id": customerID,
	})
}

func (r *GrantRepositoryImpl) Upsert(ctx context.Context, g *ScopedGrant) (*ScopedGrant, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"granted":    g.Granted,
			"granted_by": g.GrantedBy,
			"granted_at": g.GrantedAt,
			"expires_at": g.ExpiresAt,
			"notes":      g.Notes,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored ScopedGrant
	err := r.collection.FindOneAndUpdate(ctx, identityFilter(ctx, g.StaffID, g.Scope, g.CustomerID), update, opts).Decode(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *GrantRepositoryImpl) SetGranted(ctx context.Context, id primitive.ObjectID, granted bool) (*ScopedGrant, error) {
	update := bson.M{"$set": bson.M{"granted": granted, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var stored ScopedGrant
	err := r.collection.FindOneAndUpdate(ctx, scoped(ctx, bson.M{"_id": id}), update, opts).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: grant %s", apperr.ErrNotFound, id.Hex())
		}
		return nil, err
	}
	return &stored, nil
}

func (r *GrantRepositoryImpl) RevokeIdentity(ctx context.Context, staffID int64, s scope.Scope, customerID *int64) (*ScopedGrant, error) {
	update := bson.M{"$set": bson.M{"granted": false, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var stored ScopedGrant
	err := r.collection.FindOneAndUpdate(ctx, identityFilter(ctx, staffID, s, customerID), update, opts).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &stored, nil
}

func (r *GrantRepositoryImpl) revokeMany(ctx context.Context, filter bson.M) (int64, error) {
	filter["granted"] = true
	update := bson.M{"$set": bson.M{"granted": false, "updated_at": time.Now()}}

	result, err := r.collection.UpdateMany(ctx, scoped(ctx, filter), update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *GrantRepositoryImpl) RevokeByStaff(ctx context.Context, staffID int64) (int64, error) {
	return r.revokeMany(ctx, bson.M{"staff_id": staffID})
}

func (r *GrantRepositoryImpl) RevokeByStaffAndCustomer(ctx context.Context, staffID, customerID int64) (int64, error) {
	return r.revokeMany(ctx, bson.M{"staff_id": staffID, "customer_id": customerID})
}

func (r *GrantRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, scoped(ctx, bson.M{"_id": id}))
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: grant %s", apperr.ErrNotFound, id.Hex())
	}

	return nil
}

func (r *GrantRepositoryImpl) CountExpiredActive(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"granted":    true,
		"expires_at": bson.M{"$ne": nil, "$lte": now},
	}
	return r.collection.CountDocuments(ctx, scoped(ctx, filter))
}
