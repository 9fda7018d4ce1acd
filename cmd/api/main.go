package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/config"
	"github.com/pmtrack/backend/internal/db"
	"github.com/pmtrack/backend/internal/events"
	apphttp "github.com/pmtrack/backend/internal/http"
	"github.com/pmtrack/backend/internal/http/handlers"
	"github.com/pmtrack/backend/internal/metrics"
	"github.com/pmtrack/backend/internal/repositories"
	"github.com/pmtrack/backend/internal/services"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	metrics.Init()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	projectRepo := repositories.NewProjectRepo(pool)
	issueRepo := repositories.NewIssueRepo(pool)
	riskRepo := repositories.NewRiskRepo(pool)
	changeRepo := repositories.NewChangeRepo(pool)
	escalationRepo := repositories.NewEscalationRepo(pool)
	faultRepo := repositories.NewFaultRepo(pool)
	actionRepo := repositories.NewActionRepo(pool)
	logRepo := repositories.NewLogRepo(pool)
	lookupRepo := repositories.NewLookupRepo(pool)
	dashboardRepo := repositories.NewDashboardRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	projectService := services.NewProjectService(projectRepo, log)
	issueService := services.NewIssueService(pool, issueRepo, logRepo, actionRepo, log)
	riskService := services.NewRiskService(pool, riskRepo, logRepo, actionRepo, publisher, log)
	changeService := services.NewChangeService(pool, changeRepo, logRepo, actionRepo, publisher, log)
	escalationService := services.NewEscalationService(pool, escalationRepo, logRepo, actionRepo, log)
	faultService := services.NewFaultService(pool, faultRepo, logRepo, actionRepo, log)
	actionService := services.NewActionService(actionRepo, lookupRepo, log)
	logService := services.NewLogService(logRepo, lookupRepo, publisher, log)
	dashboardService := services.NewDashboardService(dashboardRepo, riskRepo, actionRepo, cfg.TopRisksLimit, log)

	// Handlers
	wsHub := handlers.NewWSHub(cfg, subscriber, log)
	h := apphttp.Handlers{
		Auth:       handlers.NewAuthHandler(userRepo, cfg, log),
		Project:    handlers.NewProjectHandler(projectService, log),
		Issue:      handlers.NewIssueHandler(issueService, log),
		Risk:       handlers.NewRiskHandler(riskService, log),
		Change:     handlers.NewChangeHandler(changeService, log),
		Escalation: handlers.NewEscalationHandler(escalationService, log),
		Fault:      handlers.NewFaultHandler(faultService, log),
		Action:     handlers.NewActionHandler(actionService, log),
		Log:        handlers.NewLogHandler(logService, log),
		Dashboard:  handlers.NewDashboardHandler(dashboardService, log),
		WSHub:      wsHub,
	}

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, h)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
