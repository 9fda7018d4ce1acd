package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/http/dto"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/services"
)

// ActionHandler serves the action sub-resource. Every method is bound to a
// concrete entity type at route registration time.
type ActionHandler struct {
	actionService *services.ActionService
	log           *zap.Logger
}

func NewActionHandler(actionService *services.ActionService, log *zap.Logger) *ActionHandler {
	return &ActionHandler{actionService: actionService, log: log}
}

func (h *ActionHandler) Create(entityType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid entity id"})
		}
		var req dto.CreateActionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
		}
		if err := dto.Validate(req); err != nil {
			return fail(c, h.log, err)
		}

		action := &models.Action{
			EntityType:  entityType,
			EntityID:    entityID,
			Description: req.Description,
			Status:      req.Status,
			AssignedTo:  req.AssignedTo,
			DueDate:     req.DueDate,
			Priority:    req.Priority,
		}
		if err := h.actionService.Create(c.Context(), action); err != nil {
			return fail(c, h.log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(action)
	}
}

func (h *ActionHandler) List(entityType string) fiber.Handler {
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

		actions, err := h.actionService.List(c.Context(), entityType, entityID, limit, offset)
		if err != nil {
			return fail(c, h.log, err)
		}
		return c.JSON(dto.ListResponse[models.Action]{Items: actions, Count: len(actions)})
	}
}

func (h *ActionHandler) Get(entityType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid entity id"})
		}
		actionID, err := uuid.Parse(c.Params("actionId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid action id"})
		}

		action, err := h.actionService.Get(c.Context(), entityType, entityID, actionID)
		if err != nil {
			return fail(c, h.log, err)
		}
		return c.JSON(action)
	}
}

func (h *ActionHandler) Update(entityType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid entity id"})
		}
		actionID, err := uuid.Parse(c.Params("actionId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid action id"})
		}
		var req dto.UpdateActionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
		}
		if err := dto.Validate(req); err != nil {
			return fail(c, h.log, err)
		}

		action, err := h.actionService.Update(c.Context(), entityType, entityID, actionID, &models.Action{
			Description: req.Description,
			Status:      req.Status,
			AssignedTo:  req.AssignedTo,
			DueDate:     req.DueDate,
			Priority:    req.Priority,
		})
		if err != nil {
			return fail(c, h.log, err)
		}
		return c.JSON(action)
	}
}

func (h *ActionHandler) Delete(entityType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid entity id"})
		}
		actionID, err := uuid.Parse(c.Params("actionId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid action id"})
		}
		if err := h.actionService.Delete(c.Context(), entityType, entityID, actionID); err != nil {
			return fail(c, h.log, err)
		}
		return c.JSON(dto.SuccessResponse{Message: "action deleted"})
	}
}
