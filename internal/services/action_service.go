package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/apperr"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/repositories"
)

// ActionService is plain CRUD. Actions live independently of the parent's
// workflow state: they can be added, edited and deleted whatever status the
// parent is in.
type ActionService struct {
	actionRepo *repositories.ActionRepo
	lookupRepo *repositories.LookupRepo
	log        *zap.Logger
}

func NewActionService(
	actionRepo *repositories.ActionRepo,
	lookupRepo *repositories.LookupRepo,
	log *zap.Logger,
) *ActionService {
	return &ActionService{
		actionRepo: actionRepo,
		lookupRepo: lookupRepo,
		log:        log,
	}
}

func (s *ActionService) Create(ctx context.Context, a *models.Action) error {
	if err := s.lookupRepo.EntityExists(ctx, a.EntityType, a.EntityID); err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = models.ActionStatusPending
	}
	if !models.IsValidActionStatus(a.Status) {
		return apperr.Validation("status", "unknown status "+a.Status)
	}
	if a.Priority == "" {
		a.Priority = models.PriorityMedium
	}
	return s.actionRepo.Create(ctx, a)
}

func (s *ActionService) Get(ctx context.Context, entityType string, entityID, id uuid.UUID) (*models.Action, error) {
	a, err := s.actionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.EntityType != entityType || a.EntityID != entityID {
		return nil, apperr.ErrNotFound
	}
	return a, nil
}

func (s *ActionService) List(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.Action, error) {
	if err := s.lookupRepo.EntityExists(ctx, entityType, entityID); err != nil {
		return nil, err
	}
	return s.actionRepo.ListByEntity(ctx, entityType, entityID, limit, offset)
}

func (s *ActionService) Update(ctx context.Context, entityType string, entityID, id uuid.UUID, a *models.Action) (*models.Action, error) {
	if !models.IsValidActionStatus(a.Status) {
		return nil, apperr.Validation("status", "unknown status "+a.Status)
	}

	existing, err := s.Get(ctx, entityType, entityID, id)
	if err != nil {
		return nil, err
	}

	a.ID = existing.ID
	a.EntityType = existing.EntityType
	a.EntityID = existing.EntityID
	if err := s.actionRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.actionRepo.GetByID(ctx, id)
}

func (s *ActionService) Delete(ctx context.Context, entityType string, entityID, id uuid.UUID) error {
	if _, err := s.Get(ctx, entityType, entityID, id); err != nil {
		return err
	}
	return s.actionRepo.Delete(ctx, id)
}
