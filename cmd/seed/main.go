package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	common_models "staff-acl/internal/common/models"
	"staff-acl/internal/config"
	"staff-acl/internal/database"
	"staff-acl/internal/features/audit"
	"staff-acl/internal/features/directory"
	"staff-acl/internal/features/level"
	"staff-acl/internal/features/permission"
	"staff-acl/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

type levelSeed struct {
	StaffID   int64                  `json:"staff_id"`
	Default   level.Level            `json:"default"`
	Overrides map[string]level.Level `json:"overrides"`
}

type seedFile struct {
	TenantID  string                        `json:"tenant_id"`
	Staff     []directory.Staff             `json:"staff"`
	Customers []directory.Customer          `json:"customers"`
	Levels    []levelSeed                   `json:"levels"`
	Grants    []permission.BulkGrantRequest `json:"grants"`
}

// Seed loads the seed file and writes directory entries, level grants and
// scoped grants. Every step is idempotent so the command can be re-run.
func Seed(
	lc fx.Lifecycle,
	writer directory.DirectoryWriter,
	grantService permission.GrantService,
	grantRepo permission.GrantRepository,
	levelService level.LevelService,
	levelRepo level.LevelRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				path := "cmd/seed/data/permissions.json"
				if len(os.Args) > 1 {
					path = os.Args[1]
				}
				logger.Info("Starting permission seeding", zap.String("file", path))

				b, err := os.ReadFile(path)
				if err != nil {
					logger.Error("Failed to read seed file", zap.Error(err))
					return
				}
				var data seedFile
				if err := json.Unmarshal(b, &data); err != nil {
					logger.Error("Failed to parse seed file", zap.Error(err))
					return
				}

				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				defer cancel()
				if data.TenantID != "" {
					ctx = context.WithValue(ctx, common_models.TenantIDKey, data.TenantID)
				}

				if err := grantRepo.EnsureIndexes(ctx); err != nil {
					logger.Error("Failed to ensure grant indexes", zap.Error(err))
				}
				if err := levelRepo.EnsureIndexes(ctx); err != nil {
					logger.Error("Failed to ensure level indexes", zap.Error(err))
				}

				for _, s := range data.Staff {
					if err := writer.UpsertStaff(ctx, s); err != nil {
						logger.Error("Failed to upsert staff", zap.Int64("staffId", s.ID), zap.Error(err))
					}
				}
				for _, c := range data.Customers {
					if err := writer.UpsertCustomer(ctx, c); err != nil {
						logger.Error("Failed to upsert customer", zap.Int64("customerId", c.ID), zap.Error(err))
					}
				}

				for _, l := range data.Levels {
					def := l.Default
					if def == "" {
						def = level.LevelEdit
					}
					if _, err := levelService.InitializeLevels(ctx, l.StaffID, def); err != nil {
						logger.Error("Failed to initialize levels", zap.Int64("staffId", l.StaffID), zap.Error(err))
						continue
					}
					if len(l.Overrides) > 0 {
						if _, err := levelService.UpdateLevels(ctx, l.StaffID, l.Overrides); err != nil {
							logger.Error("Failed to apply level overrides", zap.Int64("staffId", l.StaffID), zap.Error(err))
							continue
						}
					}
					logger.Info("Levels seeded", zap.Int64("staffId", l.StaffID), zap.String("default", string(def)))
				}

				for _, g := range data.Grants {
					rows, err := grantService.BulkGrant(ctx, g)
					if err != nil {
						logger.Error("Failed to seed grants", zap.Int64("staffId", g.StaffID), zap.Int("applied", len(rows)), zap.Error(err))
						continue
					}
					logger.Info("Grants seeded", zap.Int64("staffId", g.StaffID), zap.Int("rows", len(rows)))
				}

				logger.Info("Seeding complete")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			directory.NewStaffRepository,
			directory.NewCustomerRepository,
			directory.NewDirectoryWriter,
			audit.NewAuditRepository,
			audit.NewAuditService,
			permission.NewGrantRepository,
			permission.NewGrantService,
			level.NewLevelRepository,
			level.NewLevelService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
