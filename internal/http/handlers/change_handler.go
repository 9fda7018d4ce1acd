package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/http/dto"
	"github.com/pmtrack/backend/internal/middleware"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/repositories"
	"github.com/pmtrack/backend/internal/services"
)

type ChangeHandler struct {
	changeService *services.ChangeService
	log           *zap.Logger
}

func NewChangeHandler(changeService *services.ChangeService, log *zap.Logger) *ChangeHandler {
	return &ChangeHandler{changeService: changeService, log: log}
}

func (h *ChangeHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	change := &models.Change{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if err := h.changeService.Create(c.Context(), middleware.GetUserID(c), change); err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewChangeResponse(change))
}

func (h *ChangeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid change id"})
	}
	change, err := h.changeService.Get(c.Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewChangeResponse(change))
}

func (h *ChangeHandler) List(c *fiber.Ctx) error {
	filter := repositories.ChangeFilter{Limit: 50}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("project_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.ProjectID = &id
		}
	}
	if v := c.Query("requested_by"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.RequestedBy = &id
		}
	}

	changes, err := h.changeService.List(c.Context(), filter)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ListResponse[models.Change]{Items: changes, Count: len(changes)})
}

func (h *ChangeHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid change id"})
	}
	var req dto.UpdateChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	change, err := h.changeService.Update(c.Context(), id, middleware.GetUserID(c), models.ChangeUpdate{
		Title:                 req.Title,
		Description:           req.Description,
		Priority:              req.Priority,
		Status:                req.Status,
		ImplementationSummary: req.ImplementationSummary,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewChangeResponse(change))
}

func (h *ChangeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid change id"})
	}
	if err := h.changeService.Delete(c.Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "change deleted"})
}

func (h *ChangeHandler) RequestApproval(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid change id"})
	}
	var req dto.RequestApprovalRequest
	_ = c.BodyParser(&req)

	change, err := h.changeService.RequestApproval(c.Context(), id, middleware.GetUserID(c), req.ApprovalJustification)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewChangeResponse(change))
}

func (h *ChangeHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid change id"})
	}
	var req dto.ApproveRequest
	_ = c.BodyParser(&req)

	change, err := h.changeService.Approve(c.Context(), id, middleware.GetUserID(c), req.ApprovalComments)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewChangeResponse(change))
}

func (h *ChangeHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid change id"})
	}
	var req dto.RejectRequest
	_ = c.BodyParser(&req)

	change, err := h.changeService.Reject(c.Context(), id, middleware.GetUserID(c), req.RejectionReason)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewChangeResponse(change))
}

func (h *ChangeHandler) RequestClosure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid change id"})
	}
	var req dto.RequestClosureRequest
	_ = c.BodyParser(&req)

	change, err := h.changeService.RequestClosure(c.Context(), id, middleware.GetUserID(c), req.ClosureJustification)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewChangeResponse(change))
}

func (h *ChangeHandler) ApproveClosure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid change id"})
	}
	var req dto.ApproveRequest
	_ = c.BodyParser(&req)

	change, err := h.changeService.ApproveClosure(c.Context(), id, middleware.GetUserID(c), req.ApprovalComments)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewChangeResponse(change))
}

func (h *ChangeHandler) RejectClosure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid change id"})
	}
	var req dto.RejectRequest
	_ = c.BodyParser(&req)

	change, err := h.changeService.RejectClosure(c.Context(), id, middleware.GetUserID(c), req.RejectionReason)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewChangeResponse(change))
}
