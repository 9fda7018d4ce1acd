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

type RiskHandler struct {
	riskService *services.RiskService
	log         *zap.Logger
}

func NewRiskHandler(riskService *services.RiskService, log *zap.Logger) *RiskHandler {
	return &RiskHandler{riskService: riskService, log: log}
}

func (h *RiskHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRiskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	risk := &models.Risk{
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		Probability:    req.Probability,
		Impact:         req.Impact,
		OwnerID:        req.OwnerID,
		MitigationPlan: req.MitigationPlan,
		TargetDate:     req.TargetDate,
	}
	if err := h.riskService.Create(c.Context(), middleware.GetUserID(c), risk); err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRiskResponse(risk))
}

func (h *RiskHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid risk id"})
	}
	risk, err := h.riskService.Get(c.Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewRiskResponse(risk))
}

func (h *RiskHandler) List(c *fiber.Ctx) error {
	filter := repositories.RiskFilter{Limit: 50}
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
	if v := c.Query("owner_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.OwnerID = &id
		}
	}
	if v := c.Query("min_score"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinScore = &n
		}
	}

	risks, err := h.riskService.List(c.Context(), filter)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ListResponse[models.Risk]{Items: risks, Count: len(risks)})
}

func (h *RiskHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid risk id"})
	}
	var req dto.UpdateRiskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	risk, err := h.riskService.Update(c.Context(), id, middleware.GetUserID(c), models.RiskUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Probability:    req.Probability,
		Impact:         req.Impact,
		OwnerID:        req.OwnerID,
		MitigationPlan: req.MitigationPlan,
		TargetDate:     req.TargetDate,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewRiskResponse(risk))
}

func (h *RiskHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid risk id"})
	}
	if err := h.riskService.Delete(c.Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "risk deleted"})
}

func (h *RiskHandler) RequestClosure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid risk id"})
	}
	var req dto.RequestClosureRequest
	_ = c.BodyParser(&req)

	risk, err := h.riskService.RequestClosure(c.Context(), id, middleware.GetUserID(c), req.ClosureJustification)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewRiskResponse(risk))
}

func (h *RiskHandler) ApproveClosure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid risk id"})
	}
	var req dto.ApproveRequest
	_ = c.BodyParser(&req)

	risk, err := h.riskService.ApproveClosure(c.Context(), id, middleware.GetUserID(c), req.ApprovalComments)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewRiskResponse(risk))
}

func (h *RiskHandler) RejectClosure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid risk id"})
	}
	var req dto.RejectRequest
	_ = c.BodyParser(&req)

	risk, err := h.riskService.RejectClosure(c.Context(), id, middleware.GetUserID(c), req.RejectionReason)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewRiskResponse(risk))
}
