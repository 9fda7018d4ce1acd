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

type FaultService struct {
	pool       *pgxpool.Pool
	faultRepo  *repositories.FaultRepo
	logRepo    *repositories.LogRepo
	actionRepo *repositories.ActionRepo
	log        *zap.Logger
}

func NewFaultService(
	pool *pgxpool.Pool,
	faultRepo *repositories.FaultRepo,
	logRepo *repositories.LogRepo,
	actionRepo *repositories.ActionRepo,
	log *zap.Logger,
) *FaultService {
	return &FaultService{
		pool:       pool,
		faultRepo:  faultRepo,
		logRepo:    logRepo,
		actionRepo: actionRepo,
		log:        log,
	}
}

func (s *FaultService) Create(ctx context.Context, actor uuid.UUID, f *models.Fault) error {
	if f.Status == "" {
		f.Status = models.ItemStatusOpen
	}
	if !models.IsValidItemStatus(f.Status) {
		return apperr.Validation("status", "unknown status "+f.Status)
	}
	if f.Priority == "" {
		f.Priority = models.PriorityMedium
	}
	f.RaisedBy = &actor
	return s.faultRepo.Create(ctx, f)
}

func (s *FaultService) Get(ctx context.Context, id uuid.UUID) (*models.Fault, error) {
	return s.faultRepo.GetByID(ctx, id)
}

func (s *FaultService) List(ctx context.Context, f repositories.ItemFilter) ([]models.Fault, error) {
	return s.faultRepo.List(ctx, f)
}

func (s *FaultService) Update(ctx context.Context, id, actor uuid.UUID, f *models.Fault) (*models.Fault, error) {
	if !models.IsValidItemStatus(f.Status) {
		return nil, apperr.Validation("status", "unknown status "+f.Status)
	}

	existing, err := s.faultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f.ID = existing.ID
	f.ProjectID = existing.ProjectID
	f.RaisedBy = existing.RaisedBy

	err = repositories.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.faultRepo.UpdateTx(ctx, tx, f); err != nil {
			return err
		}
		if existing.Status != f.Status {
			entry := itemStatusLog(models.EntityTypeFault, id, existing.Status, f.Status, actor)
			return s.logRepo.AppendTx(ctx, tx, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.faultRepo.GetByID(ctx, id)
}

func (s *FaultService) Delete(ctx context.Context, id uuid.UUID) error {
	return repositories.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.actionRepo.DeleteByEntityTx(ctx, tx, models.EntityTypeFault, id); err != nil {
			return err
		}
		if err := s.logRepo.DeleteByEntityTx(ctx, tx, models.EntityTypeFault, id); err != nil {
			return err
		}
		return s.faultRepo.DeleteTx(ctx, tx, id)
	})
}
