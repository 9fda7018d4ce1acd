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

type IssueService struct {
	pool       *pgxpool.Pool
	issueRepo  *repositories.IssueRepo
	logRepo    *repositories.LogRepo
	actionRepo *repositories.ActionRepo
	log        *zap.Logger
}

func NewIssueService(
	pool *pgxpool.Pool,
	issueRepo *repositories.IssueRepo,
	logRepo *repositories.LogRepo,
	actionRepo *repositories.ActionRepo,
	log *zap.Logger,
) *IssueService {
	return &IssueService{
		pool:       pool,
		issueRepo:  issueRepo,
		logRepo:    logRepo,
		actionRepo: actionRepo,
		log:        log,
	}
}

func (s *IssueService) Create(ctx context.Context, actor uuid.UUID, i *models.Issue) error {
	if i.Status == "" {
		i.Status = models.ItemStatusOpen
	}
	if !models.IsValidItemStatus(i.Status) {
		return apperr.Validation("status", "unknown status "+i.Status)
	}
	if i.Priority == "" {
		i.Priority = models.PriorityMedium
	}
	i.RaisedBy = &actor
	return s.issueRepo.Create(ctx, i)
}

func (s *IssueService) Get(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	return s.issueRepo.GetByID(ctx, id)
}

func (s *IssueService) List(ctx context.Context, f repositories.ItemFilter) ([]models.Issue, error) {
	return s.issueRepo.List(ctx, f)
}

// Update applies a generic edit. Issues carry no approval gates: any valid
// status is settable, but an actual status move still logs one row, written
// in the same transaction as the update.
func (s *IssueService) Update(ctx context.Context, id, actor uuid.UUID, i *models.Issue) (*models.Issue, error) {
	if !models.IsValidItemStatus(i.Status) {
		return nil, apperr.Validation("status", "unknown status "+i.Status)
	}

	existing, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	i.ID = existing.ID
	i.ProjectID = existing.ProjectID
	i.RaisedBy = existing.RaisedBy

	err = repositories.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.issueRepo.UpdateTx(ctx, tx, i); err != nil {
			return err
		}
		if existing.Status != i.Status {
			entry := itemStatusLog(models.EntityTypeIssue, id, existing.Status, i.Status, actor)
			return s.logRepo.AppendTx(ctx, tx, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.issueRepo.GetByID(ctx, id)
}

func (s *IssueService) Delete(ctx context.Context, id uuid.UUID) error {
	return repositories.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.actionRepo.DeleteByEntityTx(ctx, tx, models.EntityTypeIssue, id); err != nil {
			return err
		}
		if err := s.logRepo.DeleteByEntityTx(ctx, tx, models.EntityTypeIssue, id); err != nil {
			return err
		}
		return s.issueRepo.DeleteTx(ctx, tx, id)
	})
}
