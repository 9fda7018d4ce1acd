package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/apperr"
	"github.com/pmtrack/backend/internal/events"
	"github.com/pmtrack/backend/internal/metrics"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/repositories"
)

type RiskService struct {
	pool       *pgxpool.Pool
	riskRepo   *repositories.RiskRepo
	logRepo    *repositories.LogRepo
	actionRepo *repositories.ActionRepo
	publisher  events.Publisher
	log        *zap.Logger
}

func NewRiskService(
	pool *pgxpool.Pool,
	riskRepo *repositories.RiskRepo,
	logRepo *repositories.LogRepo,
	actionRepo *repositories.ActionRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *RiskService {
	return &RiskService{
		pool:       pool,
		riskRepo:   riskRepo,
		logRepo:    logRepo,
		actionRepo: actionRepo,
		publisher:  publisher,
		log:        log,
	}
}

// transition mirrors the change workflow: row lock, guarded mutation,
// entity update and log row in one transaction.
func (s *RiskService) transition(ctx context.Context, id uuid.UUID, op string, workflowFields bool,
	mutate func(r *models.Risk) (*models.EntityLog, error)) (*models.Risk, error) {

	var updated *models.Risk
	var entry *models.EntityLog

	err := repositories.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		r, err := s.riskRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		entry, err = mutate(r)
		if err != nil {
			return err
		}

		if workflowFields {
			err = s.riskRepo.UpdateWorkflowTx(ctx, tx, r)
		} else {
			err = s.riskRepo.UpdateFieldsTx(ctx, tx, r)
		}
		if err != nil {
			return err
		}
		if entry != nil {
			if err := s.logRepo.AppendTx(ctx, tx, entry); err != nil {
				return err
			}
		}
		updated = r
		return nil
	})
	if err != nil {
		metrics.TransitionsRejected.WithLabelValues(models.EntityTypeRisk, op).Inc()
		return nil, err
	}

	if entry != nil && entry.PreviousStatus != nil && entry.NewStatus != nil {
		metrics.TransitionsTotal.WithLabelValues(models.EntityTypeRisk, *entry.PreviousStatus, *entry.NewStatus).Inc()
		eventType := events.EventWorkflowTransition
		if op == "request-closure" {
			eventType = events.EventClosureRequested
		}
		_ = s.publisher.Publish(ctx, events.StreamWorkflow, events.Event{
			Type: eventType,
			Payload: map[string]any{
				"entity_type":     models.EntityTypeRisk,
				"entity_id":       id.String(),
				"op":              op,
				"previous_status": *entry.PreviousStatus,
				"new_status":      *entry.NewStatus,
			},
		})
	}

	return updated, nil
}

func (s *RiskService) Create(ctx context.Context, actor uuid.UUID, r *models.Risk) error {
	now := time.Now()
	r.Status = models.RiskWorkflow.Initial
	if r.IdentifiedDate == nil {
		r.IdentifiedDate = &now
	}
	if r.Probability < 1 || r.Probability > 5 {
		return apperr.Validation("probability", "must be between 1 and 5")
	}
	if r.Impact < 1 || r.Impact > 5 {
		return apperr.Validation("impact", "must be between 1 and 5")
	}
	r.Rescore()
	return s.riskRepo.Create(ctx, r)
}

func (s *RiskService) Get(ctx context.Context, id uuid.UUID) (*models.Risk, error) {
	return s.riskRepo.GetByID(ctx, id)
}

func (s *RiskService) List(ctx context.Context, f repositories.RiskFilter) ([]models.Risk, error) {
	return s.riskRepo.List(ctx, f)
}

func (s *RiskService) RequestClosure(ctx context.Context, id, actor uuid.UUID, justification string) (*models.Risk, error) {
	return s.transition(ctx, id, "request-closure", true, func(r *models.Risk) (*models.EntityLog, error) {
		return r.RequestClosure(actor, justification)
	})
}

func (s *RiskService) ApproveClosure(ctx context.Context, id, actor uuid.UUID, comments string) (*models.Risk, error) {
	return s.transition(ctx, id, "approve-closure", true, func(r *models.Risk) (*models.EntityLog, error) {
		return r.ApproveClosure(actor, comments, time.Now())
	})
}

func (s *RiskService) RejectClosure(ctx context.Context, id, actor uuid.UUID, reason string) (*models.Risk, error) {
	return s.transition(ctx, id, "reject-closure", true, func(r *models.Risk) (*models.EntityLog, error) {
		return r.RejectClosure(actor, reason)
	})
}

func (s *RiskService) Update(ctx context.Context, id, actor uuid.UUID, upd models.RiskUpdate) (*models.Risk, error) {
	return s.transition(ctx, id, "update", false, func(r *models.Risk) (*models.EntityLog, error) {
		return r.ApplyUpdate(actor, upd)
	})
}

func (s *RiskService) Delete(ctx context.Context, id uuid.UUID) error {
	return repositories.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := s.riskRepo.GetByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}
		if err := s.actionRepo.DeleteByEntityTx(ctx, tx, models.EntityTypeRisk, id); err != nil {
			return err
		}
		if err := s.logRepo.DeleteByEntityTx(ctx, tx, models.EntityTypeRisk, id); err != nil {
			return err
		}
		return s.riskRepo.DeleteTx(ctx, tx, id)
	})
}
