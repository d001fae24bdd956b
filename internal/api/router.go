package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/parqueo-gt/parqueo/internal/api/docs"
	"github.com/parqueo-gt/parqueo/internal/api/handler"
	"github.com/parqueo-gt/parqueo/internal/api/middleware"
	"github.com/parqueo-gt/parqueo/internal/audit"
	"github.com/parqueo-gt/parqueo/internal/cache"
	"github.com/parqueo-gt/parqueo/internal/config"
	"github.com/parqueo-gt/parqueo/internal/repository"
	"github.com/parqueo-gt/parqueo/internal/service"
	"github.com/parqueo-gt/parqueo/internal/settlement"
)

type Dependencies struct {
	DB     *pgxpool.Pool
	Config *config.Config
}

type Router struct {
	app                    *fiber.App
	logger                 *slog.Logger
	deps                   *Dependencies
	rateLimiter            *middleware.RateLimiter
	cancelSettlementWorker context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Parqueo API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.HeaderUserID,
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}

	// Health check endpoints
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	v1 := r.app.Group("/v1")

	// Only configure data-backed routes if dependencies were provided
	if r.deps == nil {
		return
	}

	cfg := r.deps.Config
	db := r.deps.DB

	// Operator identity for audit entries
	v1.Use(middleware.Actor())

	// Rate limiting per client IP
	limiterConfig := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimitPerMinute > 0 {
		limiterConfig.Max = cfg.RateLimitPerMinute
	}
	r.rateLimiter = middleware.NewRateLimiter(limiterConfig)
	v1.Use(r.rateLimiter.Handler())

	// Repositories
	branchRepo := repository.NewBranchRepository(db)
	rateRepo := repository.NewRateRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	benefitRepo := repository.NewBenefitRepository(db)
	fleetRepo := repository.NewFleetRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	recorder := audit.NewPGRecorder(db, r.logger)

	// Ticket lifecycle
	calculator := service.NewChargeCalculator(cfg.BillingUnitMinutes)
	resolver := service.NewEntitlementResolver(subscriptionRepo, planRepo, benefitRepo, fleetRepo)
	sessionService := service.NewSessionService(
		ticketRepo,
		branchRepo,
		subscriptionRepo,
		rateRepo,
		resolver,
		calculator,
		r.logger,
	)

	ticketHandler := handler.NewTicketHandler(sessionService, r.logger)
	v1.Post("/tickets/entry", ticketHandler.Entry)
	v1.Get("/tickets", ticketHandler.Search)
	v1.Get("/tickets/folio/:folio", ticketHandler.GetByFolio)
	v1.Post("/tickets/:id/exit", ticketHandler.Exit)
	v1.Get("/tickets/:id/charge-preview", ticketHandler.ChargePreview)

	// Rate catalog
	rateCatalog := service.NewRateCatalog(rateRepo, recorder, r.logger)
	rateHandler := handler.NewRateHandler(rateCatalog, r.logger)
	v1.Put("/rates/base", rateHandler.SetBase)
	v1.Get("/branches/:id/rate", rateHandler.Current)
	v1.Put("/branches/:id/rate", rateHandler.SetBranch)
	v1.Delete("/branches/:id/rate", rateHandler.ClearBranch)

	// Commerce benefits
	benefitService := service.NewBenefitService(benefitRepo, branchRepo, recorder, r.logger)
	benefitHandler := handler.NewBenefitHandler(benefitService, r.logger)
	v1.Get("/branches/:id/benefit", benefitHandler.Get)
	v1.Put("/branches/:id/benefit", benefitHandler.Configure)
	v1.Delete("/branches/:id/benefit", benefitHandler.Deactivate)

	// Corporate fleets
	fleetService := service.NewFleetService(fleetRepo, recorder, r.logger)
	fleetHandler := handler.NewFleetHandler(fleetService, r.logger)
	v1.Get("/fleets/:id", fleetHandler.Get)
	v1.Put("/fleets/:id/discount", fleetHandler.SetDiscount)
	v1.Post("/fleets/:id/vehicles", fleetHandler.AddVehicle)

	// Plan catalog
	planService := service.NewPlanService(planRepo, recorder, r.logger)
	planHandler := handler.NewPlanHandler(planService, r.logger)
	v1.Get("/plans", planHandler.List)
	v1.Get("/plans/:code", planHandler.Get)
	v1.Put("/plans/:code", planHandler.Update)

	// Settlements, cached in Postgres
	pgCache := cache.NewPGCache(db)
	cacheAdapter := settlement.NewCacheAdapter(pgCache)
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(
		settlementRepo,
		benefitRepo,
		fleetRepo,
		branchRepo,
		cacheAdapter,
		cfg.DefaultLocation(),
		r.logger,
	)

	settlementHandler := handler.NewSettlementHandler(settlementService, r.logger)
	v1.Get("/settlements/benefits/:id", settlementHandler.Benefit)
	v1.Get("/settlements/fleets/:id", settlementHandler.Fleet)

	// Background refresh of open settlement windows
	interval := cfg.SettlementInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	settlementWorker := settlement.NewWorker(settlementService, settlementRepo, pgCache, r.logger, interval)
	workerCtx, cancel := context.WithCancel(context.Background())
	r.cancelSettlementWorker = cancel
	go settlementWorker.Run(workerCtx)

	// Audit trail (read-only)
	auditHandler := handler.NewAuditHandler(auditRepo, r.logger)
	v1.Get("/audit", auditHandler.List)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	if r.cancelSettlementWorker != nil {
		r.cancelSettlementWorker()
	}

	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
