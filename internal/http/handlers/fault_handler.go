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

type FaultHandler struct {
	faultService *services.FaultService
	log          *zap.Logger
}

func NewFaultHandler(faultService *services.FaultService, log *zap.Logger) *FaultHandler {
	return &FaultHandler{faultService: faultService, log: log}
}

func (h *FaultHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFaultRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	fault := &models.Fault{
		TrackedItem: models.TrackedItem{
			ProjectID:   req.ProjectID,
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			AssignedTo:  req.AssignedTo,
			DueDate:     req.DueDate,
		},
		Severity:   req.Severity,
		DetectedIn: req.DetectedIn,
	}
	if err := h.faultService.Create(c.Context(), middleware.GetUserID(c), fault); err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fault)
}

func (h *FaultHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid fault id"})
	}
	fault, err := h.faultService.Get(c.Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(fault)
}

func (h *FaultHandler) List(c *fiber.Ctx) error {
	faults, err := h.faultService.List(c.Context(), itemFilterFromQuery(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ListResponse[models.Fault]{Items: faults, Count: len(faults)})
}

func (h *FaultHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid fault id"})
	}
	var req dto.UpdateFaultRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	fault, err := h.faultService.Update(c.Context(), id, middleware.GetUserID(c), &models.Fault{
		TrackedItem: models.TrackedItem{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			AssignedTo:  req.AssignedTo,
			DueDate:     req.DueDate,
			Resolution:  req.Resolution,
		},
		Severity:   req.Severity,
		RootCause:  req.RootCause,
		DetectedIn: req.DetectedIn,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(fault)
}

func (h *FaultHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid fault id"})
	}
	if err := h.faultService.Delete(c.Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "fault deleted"})
}
