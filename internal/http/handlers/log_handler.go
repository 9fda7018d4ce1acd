package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/http/dto"
	"github.com/pmtrack/backend/internal/middleware"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/services"
)

// LogHandler serves the audit log sub-resource shared by every tracked
// entity. Methods are bound to a concrete entity type at registration time.
type LogHandler struct {
	logService *services.LogService
	log        *zap.Logger
}

func NewLogHandler(logService *services.LogService, log *zap.Logger) *LogHandler {
	return &LogHandler{logService: logService, log: log}
}

func (h *LogHandler) Comment(entityType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid entity id"})
		}
		var req dto.CommentRequest
		_ = c.BodyParser(&req)

		entry, err := h.logService.Comment(c.Context(), entityType, entityID, middleware.GetUserID(c), req.Comments)
		if err != nil {
			return fail(c, h.log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

func (h *LogHandler) List(entityType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid entity id"})
		}
		limit, offset := 50, 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				offset = n
			}
		}

		entries, err := h.logService.List(c.Context(), entityType, entityID, limit, offset)
		if err != nil {
			return fail(c, h.log, err)
		}
		return c.JSON(dto.ListResponse[models.EntityLog]{Items: entries, Count: len(entries)})
	}
}

func (h *LogHandler) History(entityType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid entity id"})
		}
		entries, err := h.logService.History(c.Context(), entityType, entityID)
		if err != nil {
			return fail(c, h.log, err)
		}
		return c.JSON(dto.ListResponse[models.EntityLog]{Items: entries, Count: len(entries)})
	}
}
