package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"staff-acl/internal/config"
	"staff-acl/internal/database"
	"staff-acl/internal/features/audit"
	"staff-acl/internal/features/directory"
	"staff-acl/internal/features/level"
	"staff-acl/internal/features/masking"
	"staff-acl/internal/features/permission"
	"staff-acl/internal/features/summary"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// permcheck prints what both permission models say about a staff member.
//
//	permcheck <staffId> [customerId]
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <staffId> [customerId]", os.Args[0])
	}
	staffID, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil {
		log.Fatalf("invalid staff id %q: %v", os.Args[1], err)
	}
	var customerID *int64
	if len(os.Args) > 2 {
		id, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			log.Fatalf("invalid customer id %q: %v", os.Args[2], err)
		}
		customerID = &id
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Disconnect(ctx)
	db := &database.MongodbDB{DB: client.Database(cfg.DBName)}

	zl := zap.NewNop()
	staffDir := directory.NewStaffRepository(db)
	customerDir := directory.NewCustomerRepository(db)
	auditService := audit.NewAuditService(audit.NewAuditRepository(db))
	grants := permission.NewGrantService(permission.NewGrantRepository(db), staffDir, customerDir, auditService, cfg, zl)
	levels := level.NewLevelService(level.NewLevelRepository(db), staffDir, auditService, cfg, zl)

	result, err := summary.NewSummarizer(grants, staffDir, customerDir, zl).Summarize(ctx, staffID, customerID)
	if err != nil {
		log.Fatalf("Summary failed: %v", err)
	}
	fmt.Printf("Staff: %s (ID: %d)\n", result.StaffName, result.StaffID)
	if customerID != nil {
		fmt.Printf("Customer: %s (ID: %d)\n", result.CustomerName, *customerID)
	}
	fmt.Printf("Scoped model: %s (score %d)\n", result.PermissionLevel, result.Score)
	fmt.Printf("  readable: %v\n", result.ReadableFields)
	fmt.Printf("  writable: %v\n", result.WritableFields)

	g, err := levels.GetLevels(ctx, staffID)
	if err != nil {
		log.Fatalf("Level lookup failed: %v", err)
	}
	if g == nil {
		fmt.Println("Level model: FULL ACCESS (no level grant)")
	} else {
		fmt.Println("Level model:")
		for _, field := range level.Fields() {
			l, _ := g.Get(field)
			fmt.Printf("  %-20s %-4s %s\n", field, l, level.Decide(l))
		}
	}

	sample := masking.CustomerView{ID: 0, FullName: "Nguyen Thi Mai", Phone: "0901234567"}
	email := "mai.nguyen@example.com"
	sample.Email = &email
	out, _ := json.MarshalIndent(masking.Apply(sample, g), "", "  ")
	fmt.Printf("Sample masked record:\n%s\n", out)
}
