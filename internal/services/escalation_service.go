package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/apperr"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/repositories"
)

type EscalationService struct {
	pool           *pgxpool.Pool
	escalationRepo *repositories.EscalationRepo
	logRepo        *repositories.LogRepo
	actionRepo     *repositories.ActionRepo
	log            *zap.Logger
}

func NewEscalationService(
	pool *pgxpool.Pool,
	escalationRepo *repositories.EscalationRepo,
	logRepo *repositories.LogRepo,
	actionRepo *repositories.ActionRepo,
	log *zap.Logger,
) *EscalationService {
	return &EscalationService{
		pool:           pool,
		escalationRepo: escalationRepo,
		logRepo:        logRepo,
		actionRepo:     actionRepo,
		log:            log,
	}
}

func (s *EscalationService) Create(ctx context.Context, actor uuid.UUID, e *models.Escalation) error {
	if e.Status == "" {
		e.Status = models.ItemStatusOpen
	}
	if !models.IsValidItemStatus(e.Status) {
		return apperr.Validation("status", "unknown status "+e.Status)
	}
	if e.Priority == "" {
		e.Priority = models.PriorityHigh
	}
	if e.EscalationLevel <= 0 {
		e.EscalationLevel = 1
	}
	e.RaisedBy = &actor
	return s.escalationRepo.Create(ctx, e)
}

func (s *EscalationService) Get(ctx context.Context, id uuid.UUID) (*models.Escalation, error) {
	return s.escalationRepo.GetByID(ctx, id)
}

func (s *EscalationService) List(ctx context.Context, f repositories.ItemFilter) ([]models.Escalation, error) {
	return s.escalationRepo.List(ctx, f)
}

func (s *EscalationService) Update(ctx context.Context, id, actor uuid.UUID, e *models.Escalation) (*models.Escalation, error) {
	if !models.IsValidItemStatus(e.Status) {
		return nil, apperr.Validation("status", "unknown status "+e.Status)
	}

	existing, err := s.escalationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.ID = existing.ID
	e.ProjectID = existing.ProjectID
	e.RaisedBy = existing.RaisedBy

	err = repositories.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.escalationRepo.UpdateTx(ctx, tx, e); err != nil {
			return err
		}
		if existing.Status != e.Status {
			entry := itemStatusLog(models.EntityTypeEscalation, id, existing.Status, e.Status, actor)
			return s.logRepo.AppendTx(ctx, tx, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.escalationRepo.GetByID(ctx, id)
}

func (s *EscalationService) Delete(ctx context.Context, id uuid.UUID) error {
	return repositories.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.actionRepo.DeleteByEntityTx(ctx, tx, models.EntityTypeEscalation, id); err != nil {
			return err
		}
		if err := s.logRepo.DeleteByEntityTx(ctx, tx, models.EntityTypeEscalation, id); err != nil {
			return err
		}
		return s.escalationRepo.DeleteTx(ctx, tx, id)
	})
}
