package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/config"
	"github.com/pmtrack/backend/internal/http/handlers"
	"github.com/pmtrack/backend/internal/metrics"
	"github.com/pmtrack/backend/internal/middleware"
	"github.com/pmtrack/backend/internal/models"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Project    *handlers.ProjectHandler
	Issue      *handlers.IssueHandler
	Risk       *handlers.RiskHandler
	Change     *handlers.ChangeHandler
	Escalation *handlers.EscalationHandler
	Fault      *handlers.FaultHandler
	Action     *handlers.ActionHandler
	Log        *handlers.LogHandler
	Dashboard  *handlers.DashboardHandler
	WSHub      *handlers.WSHub
}

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	h Handlers,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))
	app.Use(middleware.MetricsMiddleware())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", h.Auth.Register)
	api.Post("/auth/login", h.Auth.Login)

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))
	approver := middleware.ApproverMiddleware()
	projectManager := middleware.ProjectManagerMiddleware()

	protected.Get("/me", h.Auth.Me)

	// Projects
	protected.Post("/projects", projectManager, h.Project.Create)
	protected.Get("/projects", h.Project.List)
	protected.Get("/projects/:id", h.Project.Get)
	protected.Put("/projects/:id", h.Project.Update)
	protected.Delete("/projects/:id", projectManager, h.Project.Delete)

	// Issues
	protected.Post("/issues", h.Issue.Create)
	protected.Get("/issues", h.Issue.List)
	protected.Get("/issues/:id", h.Issue.Get)
	protected.Put("/issues/:id", h.Issue.Update)
	protected.Delete("/issues/:id", h.Issue.Delete)

	// Risks
	protected.Post("/risks", h.Risk.Create)
	protected.Get("/risks", h.Risk.List)
	protected.Get("/risks/:id", h.Risk.Get)
	protected.Put("/risks/:id", h.Risk.Update)
	protected.Delete("/risks/:id", h.Risk.Delete)
	protected.Post("/risks/:id/request-closure", h.Risk.RequestClosure)
	protected.Post("/risks/:id/approve-closure", approver, h.Risk.ApproveClosure)
	protected.Post("/risks/:id/reject-closure", approver, h.Risk.RejectClosure)

	// Changes
	protected.Post("/changes", h.Change.Create)
	protected.Get("/changes", h.Change.List)
	protected.Get("/changes/:id", h.Change.Get)
	protected.Put("/changes/:id", h.Change.Update)
	protected.Delete("/changes/:id", h.Change.Delete)
	protected.Post("/changes/:id/request-approval", h.Change.RequestApproval)
	protected.Post("/changes/:id/approve", approver, h.Change.Approve)
	protected.Post("/changes/:id/reject", approver, h.Change.Reject)
	protected.Post("/changes/:id/request-closure", h.Change.RequestClosure)
	protected.Post("/changes/:id/approve-closure", approver, h.Change.ApproveClosure)
	protected.Post("/changes/:id/reject-closure", approver, h.Change.RejectClosure)

	// Escalations
	protected.Post("/escalations", h.Escalation.Create)
	protected.Get("/escalations", h.Escalation.List)
	protected.Get("/escalations/:id", h.Escalation.Get)
	protected.Put("/escalations/:id", h.Escalation.Update)
	protected.Delete("/escalations/:id", h.Escalation.Delete)

	// Faults
	protected.Post("/faults", h.Fault.Create)
	protected.Get("/faults", h.Fault.List)
	protected.Get("/faults/:id", h.Fault.Get)
	protected.Put("/faults/:id", h.Fault.Update)
	protected.Delete("/faults/:id", h.Fault.Delete)

	// Actions and the audit log hang off every tracked entity under the
	// same sub-paths.
	entityRoutes := []struct {
		prefix     string
		entityType string
	}{
		{"/issues", models.EntityTypeIssue},
		{"/risks", models.EntityTypeRisk},
		{"/changes", models.EntityTypeChange},
		{"/escalations", models.EntityTypeEscalation},
		{"/faults", models.EntityTypeFault},
	}
	for _, er := range entityRoutes {
		protected.Post(er.prefix+"/:id/actions", h.Action.Create(er.entityType))
		protected.Get(er.prefix+"/:id/actions", h.Action.List(er.entityType))
		protected.Get(er.prefix+"/:id/actions/:actionId", h.Action.Get(er.entityType))
		protected.Put(er.prefix+"/:id/actions/:actionId", h.Action.Update(er.entityType))
		protected.Delete(er.prefix+"/:id/actions/:actionId", h.Action.Delete(er.entityType))

		protected.Post(er.prefix+"/:id/comments", h.Log.Comment(er.entityType))
		protected.Get(er.prefix+"/:id/log", h.Log.List(er.entityType))
		protected.Get(er.prefix+"/:id/history", h.Log.History(er.entityType))
	}

	// Dashboard
	protected.Get("/dashboard", h.Dashboard.Summary)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(h.WSHub.HandleWS))
}
