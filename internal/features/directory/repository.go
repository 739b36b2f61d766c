package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staff-acl/internal/common/apperr"
	"staff-acl/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StaffDirectory resolves staff identities owned by the account subsystem.
type StaffDirectory interface {
	FindStaff(ctx context.Context, id int64) (*Staff, error)
	ListStaff(ctx context.Context) ([]Staff, error)
}

// CustomerDirectory resolves customer identities owned by the CRM subsystem.
type CustomerDirectory interface {
	FindCustomer(ctx context.Context, id int64) (*Customer, error)
}

type StaffRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewStaffRepository(mongodb *database.MongodbDB) StaffDirectory {
	return &StaffRepositoryImpl{
		Collection: mongodb.DB.Collection("staff"),
	}
}

func (r *StaffRepositoryImpl) FindStaff(ctx context.Context, id int64) (*Staff, error) {
	filter := bson.M{"staff_id": id}
	if tenantID, ok := database.TenantID(ctx); ok {
		filter["tenant_id"] = tenantID
	}

	var staff Staff
	err := r.Collection.FindOne(ctx, filter).Decode(&staff)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: staff %d", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepositoryImpl) ListStaff(ctx context.Context) ([]Staff, error) {
	filter := bson.M{}
	if tenantID, ok := database.TenantID(ctx); ok {
		filter["tenant_id"] = tenantID
	}

	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "staff_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var staff []Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

type CustomerRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCustomerRepository(mongodb *database.MongodbDB) CustomerDirectory {
	return &CustomerRepositoryImpl{
		Collection: mongodb.DB.Collection("customers"),
	}
}

func (r *CustomerRepositoryImpl) FindCustomer(ctx context.Context, id int64) (*Customer, error) {
	filter := bson.M{"customer_id": id}
	if tenantID, ok := database.TenantID(ctx); ok {
		filter["tenant_id"] = tenantID
	}

	var customer Customer
	// Only the display name is needed
	opts := options.FindOne().SetProjection(bson.M{"customer_id": 1, "full_name": 1, "tenant_id": 1})
	err := r.Collection.FindOne(ctx, filter, opts).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: customer %d", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return &customer, nil
}

// DirectoryWriter upserts directory entries. Only local seeding uses it; in
// production the account and CRM subsystems own these collections.
type DirectoryWriter interface {
	UpsertStaff(ctx context.Context, staff Staff) error
	UpsertCustomer(ctx context.Context, customer Customer) error
}

type directoryWriter struct {
	staff     *mongo.Collection
	customers *mongo.Collection
}

func NewDirectoryWriter(mongodb *database.MongodbDB) DirectoryWriter {
	return &directoryWriter{
		staff:     mongodb.DB.Collection("staff"),
		customers: mongodb.DB.Collection("customers"),
	}
}

func (w *directoryWriter) UpsertStaff(ctx context.Context, staff Staff) error {
	filter := bson.M{"staff_id": staff.ID}
	if tenantID, ok := database.TenantID(ctx); ok {
		filter["tenant_id"] = tenantID
	}
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = time.Now()
	}

	update := bson.M{
		"$set": bson.M{
			"full_name": staff.FullName,
			"role":      staff.Role,
			"status":    staff.Status,
		},
		"$setOnInsert": bson.M{"created_at": staff.CreatedAt},
	}
	_, err := w.staff.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (w *directoryWriter) UpsertCustomer(ctx context.Context, customer Customer) error {
	filter := bson.M{"customer_id": customer.ID}
	if tenantID, ok := database.TenantID(ctx); ok {
		filter["tenant_id"] = tenantID
	}

	update := bson.M{"$set": bson.M{"full_name": customer.FullName}}
	_, err := w.customers.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
