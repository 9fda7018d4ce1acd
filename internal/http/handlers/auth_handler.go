package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/apperr"
	"github.com/pmtrack/backend/internal/auth"
	"github.com/pmtrack/backend/internal/config"
	"github.com/pmtrack/backend/internal/http/dto"
	"github.com/pmtrack/backend/internal/middleware"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/rbac"
	"github.com/pmtrack/backend/internal/repositories"
)

type AuthHandler struct {
	userRepo *repositories.UserRepo
	cfg      *config.Config
	log      *zap.Logger
}

func NewAuthHandler(userRepo *repositories.UserRepo, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, cfg: cfg, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	role := req.Role
	if role == "" {
		role = rbac.RoleMember
	}
	if !rbac.IsValidRole(role) {
		return fail(c, h.log, apperr.Validation("role", "unknown role"))
	}

	if _, err := h.userRepo.GetByEmail(c.Context(), req.Email); err == nil {
		return fail(c, h.log, apperr.Validation("email", "already registered"))
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return fail(c, h.log, err)
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		return fail(c, h.log, err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
	}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		return fail(c, h.log, err)
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.Email, user.Role, h.cfg.JWTExpiration)
	if err != nil {
		return fail(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, h.log, err)
	}

	user, err := h.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid credentials"})
	}
	if auth.VerifyPassword(req.Password, user.PasswordHash) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid credentials"})
	}

	if err := h.userRepo.TouchLastActive(c.Context(), user.ID); err != nil {
		h.log.Warn("touch last active failed", zap.Error(err))
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.Email, user.Role, h.cfg.JWTExpiration)
	if err != nil {
		return fail(c, h.log, err)
	}

	return c.JSON(dto.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(user)
}
