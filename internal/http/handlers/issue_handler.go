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

type IssueHandler struct {
	issueService *services.IssueService
	log          *zap.Logger
}

func NewIssueHandler(issueService *services.IssueService, log *zap.Logger) *IssueHandler {
	return &IssueHandler{issueService: issueService, log: log}
}

func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	issue := &models.Issue{
		TrackedItem: models.TrackedItem{
			ProjectID:   req.ProjectID,
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			AssignedTo:  req.AssignedTo,
			DueDate:     req.DueDate,
		},
		Severity: req.Severity,
	}
	if err := h.issueService.Create(c.Context(), middleware.GetUserID(c), issue); err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(issue)
}

func (h *IssueHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid issue id"})
	}
	issue, err := h.issueService.Get(c.Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(issue)
}

func (h *IssueHandler) List(c *fiber.Ctx) error {
	issues, err := h.issueService.List(c.Context(), itemFilterFromQuery(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ListResponse[models.Issue]{Items: issues, Count: len(issues)})
}

func (h *IssueHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid issue id"})
	}
	var req dto.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	issue, err := h.issueService.Update(c.Context(), id, middleware.GetUserID(c), &models.Issue{
		TrackedItem: models.TrackedItem{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			AssignedTo:  req.AssignedTo,
			DueDate:     req.DueDate,
			Resolution:  req.Resolution,
		},
		Severity: req.Severity,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(issue)
}

func (h *IssueHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid issue id"})
	}
	if err := h.issueService.Delete(c.Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "issue deleted"})
}
