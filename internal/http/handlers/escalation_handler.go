package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/http/dto"
	"github.com/pmtrack/backend/internal/middleware"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/services"
)

type EscalationHandler struct {
	escalationService *services.EscalationService
	log               *zap.Logger
}

func NewEscalationHandler(escalationService *services.EscalationService, log *zap.Logger) *EscalationHandler {
	return &EscalationHandler{escalationService: escalationService, log: log}
}

func (h *EscalationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEscalationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	escalation := &models.Escalation{
		TrackedItem: models.TrackedItem{
			ProjectID:   req.ProjectID,
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			AssignedTo:  req.AssignedTo,
			DueDate:     req.DueDate,
		},
		EscalatedTo:     req.EscalatedTo,
		EscalationLevel: req.EscalationLevel,
	}
	if err := h.escalationService.Create(c.Context(), middleware.GetUserID(c), escalation); err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(escalation)
}

func (h *EscalationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid escalation id"})
	}
	escalation, err := h.escalationService.Get(c.Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(escalation)
}

func (h *EscalationHandler) List(c *fiber.Ctx) error {
	escalations, err := h.escalationService.List(c.Context(), itemFilterFromQuery(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ListResponse[models.Escalation]{Items: escalations, Count: len(escalations)})
}

func (h *EscalationHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid escalation id"})
	}
	var req dto.UpdateEscalationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	escalation, err := h.escalationService.Update(c.Context(), id, middleware.GetUserID(c), &models.Escalation{
		TrackedItem: models.TrackedItem{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			AssignedTo:  req.AssignedTo,
			DueDate:     req.DueDate,
			Resolution:  req.Resolution,
		},
		EscalatedTo:     req.EscalatedTo,
		EscalationLevel: req.EscalationLevel,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(escalation)
}

func (h *EscalationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid escalation id"})
	}
	if err := h.escalationService.Delete(c.Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "escalation deleted"})
}
