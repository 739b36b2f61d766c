package level

import (
	"context"
	"errors"
	"time"

	"staff-acl/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LevelRepository interface {
	// FindByStaff returns nil, nil when the staff member has no row.
	FindByStaff(ctx context.Context, staffID int64) (*LevelGrant, error)
	// Insert stores g unless a row exists, and returns whichever row is stored.
	Insert(ctx context.Context, g *LevelGrant) (stored *LevelGrant, created bool, err error)
	Update(ctx context.Context, g *LevelGrant) (*LevelGrant, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, staffID int64) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

type LevelRepositoryImpl struct {
	collection *mongo.Collection
}

func NewLevelRepository(mongodb *database.MongodbDB) LevelRepository {
	return &LevelRepositoryImpl{
		collection: mongodb.DB.Collection("staff_field_permissions"),
	}
}

func staffFilter(ctx context.Context, staffID int64) bson.M {
	filter := bson.M{"staff_id": staffID}
	if tenantID, ok := database.TenantID(ctx); ok {
		filter["tenant_id"] = tenantID
	}
	return filter
}

func (r *LevelRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "staff_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("level_staff"),
	})
	return err
}

func (r *LevelRepositoryImpl) FindByStaff(ctx context.Context, staffID int64) (*LevelGrant, error) {
	var g LevelGrant
	err := r.collection.FindOne(ctx, staffFilter(ctx, staffID)).Decode(&g)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *LevelRepositoryImpl) Insert(ctx context.Context, g *LevelGrant) (*LevelGrant, bool, error) {
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	if tenantID, ok := database.TenantID(ctx); ok {
		g.TenantID = tenantID
	}

	doc, err := bson.Marshal(g)
	if err != nil {
		return nil, false, err
	}
	var onInsert bson.M
	if err := bson.Unmarshal(doc, &onInsert); err != nil {
		return nil, false, err
	}

	result, err := r.collection.UpdateOne(ctx, staffFilter(ctx, g.StaffID), bson.M{"$setOnInsert": onInsert}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, false, err
	}

	stored, err := r.FindByStaff(ctx, g.StaffID)
	if err != nil {
		return nil, false, err
	}
	return stored, result.UpsertedCount > 0, nil
}

func (r *LevelRepositoryImpl) Update(ctx context.Context, g *LevelGrant) (*LevelGrant, error) {
	g.UpdatedAt = time.Now()
	set := bson.M{"updated_by": g.UpdatedBy, "updated_at": g.UpdatedAt}
	for field, l := range g.Levels() {
		set[bsonName(field)] = l
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var stored LevelGrant
	err := r.collection.FindOneAndUpdate(ctx, staffFilter(ctx, g.StaffID), bson.M{"$set": set}, opts).Decode(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *LevelRepositoryImpl) Delete(ctx context.Context, staffID int64) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, staffFilter(ctx, staffID))
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
