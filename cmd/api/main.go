package main

import (
	"context"
	"fmt"
	"time"

	common_api "staff-acl/internal/common/api"
	"staff-acl/internal/common/apperr"
	"staff-acl/internal/config"
	"staff-acl/internal/database"
	"staff-acl/internal/features/audit"
	"staff-acl/internal/features/directory"
	"staff-acl/internal/features/expiry"
	"staff-acl/internal/features/export"
	"staff-acl/internal/features/level"
	"staff-acl/internal/features/masking"
	"staff-acl/internal/features/permission"
	"staff-acl/internal/features/policy"
	"staff-acl/internal/features/summary"
	"staff-acl/internal/features/system"
	"staff-acl/internal/logger"
	"staff-acl/internal/middleware"
	"staff-acl/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	app.Use(middleware.TenantHeaderMiddleware(cfg.SkipAuth))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	log.Info("registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		log.Debug("setting up route", zap.String("route", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				log.Info("server listening", zap.String("port", cfg.Port), zap.Bool("skipAuth", cfg.SkipAuth))
				if err := app.Listen(port); err != nil {
					log.Fatal("server failed to start", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, grantRepo permission.GrantRepository, levelRepo level.LevelRepository, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := grantRepo.EnsureIndexes(ctx); err != nil {
					log.Error("failed to ensure grant indexes", zap.Error(err))
				}
				if err := levelRepo.EnsureIndexes(ctx); err != nil {
					log.Error("failed to ensure level indexes", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

// StartExpiryReporter ties the reporter's cron scheduler to the app lifecycle.
func StartExpiryReporter(lc fx.Lifecycle, reporter expiry.ExpiryReporter) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return reporter.InitializeScheduler(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return reporter.StopScheduler()
		},
	})
}

// Options is the service graph without the HTTP layer.
var Options = fx.Options(
	fx.Provide(
		// Load Config
		config.LoadConfig,

		// Initialize Logger
		logger.NewLogger,

		// Initialize Database
		database.NewDatabase,

		// Initialize Repository
		audit.NewAuditRepository,
		directory.NewStaffRepository,
		directory.NewCustomerRepository,
		permission.NewGrantRepository,
		level.NewLevelRepository,

		// Initialize Service
		audit.NewAuditService,
		permission.NewGrantService,
		level.NewLevelService,
		policy.NewScopedPolicy,
		policy.NewLevelPolicy,
		policy.NewEvaluator,
		summary.NewSummarizer,
		masking.NewMaskingService,
		export.NewExportService,
		expiry.NewExpiryReporter,
	),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),
)

func main() {
	app := fx.New(
		Options,
		fx.Provide(
			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Controller
			audit.NewAuditController,
			system.NewDebugController,
			permission.NewPermissionController,
			level.NewLevelController,
			policy.NewPolicyController,
			summary.NewSummaryController,
			masking.NewMaskingController,
			export.NewExportController,

			// Initialize API Routes
			AsRoute(audit.NewAuditApi),
			AsRoute(system.NewDebugApi),
			AsRoute(permission.NewPermissionApi),
			AsRoute(level.NewLevelApi),
			AsRoute(policy.NewPolicyApi),
			AsRoute(summary.NewSummaryApi),
			AsRoute(masking.NewMaskingApi),
			AsRoute(export.NewExportApi),
		),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeIndexes,
			StartExpiryReporter,
		),
	)

	app.Run()
}
