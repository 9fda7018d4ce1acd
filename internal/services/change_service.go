package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/events"
	"github.com/pmtrack/backend/internal/metrics"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/repositories"
)

type ChangeService struct {
	pool       *pgxpool.Pool
	changeRepo *repositories.ChangeRepo
	logRepo    *repositories.LogRepo
	actionRepo *repositories.ActionRepo
	publisher  events.Publisher
	log        *zap.Logger
}

func NewChangeService(
	pool *pgxpool.Pool,
	changeRepo *repositories.ChangeRepo,
	logRepo *repositories.LogRepo,
	actionRepo *repositories.ActionRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *ChangeService {
	return &ChangeService{
		pool:       pool,
		changeRepo: changeRepo,
		logRepo:    logRepo,
		actionRepo: actionRepo,
		publisher:  publisher,
		log:        log,
	}
}

// transition runs one guarded workflow operation: the row is locked, the
// mutation validated and applied, and the entity update plus its log row
// committed as a single unit. Metrics and the event publish happen after
// commit, best-effort.
func (s *ChangeService) transition(ctx context.Context, id uuid.UUID, op string,
	mutate func(c *models.Change) (*models.EntityLog, error)) (*models.Change, error) {

	var updated *models.Change
	var entry *models.EntityLog

	err := repositories.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		c, err := s.changeRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		entry, err = mutate(c)
		if err != nil {
			return err
		}

		if err := s.changeRepo.UpdateWorkflowTx(ctx, tx, c); err != nil {
			return err
		}
		if entry != nil {
			if err := s.logRepo.AppendTx(ctx, tx, entry); err != nil {
				return err
			}
		}
		updated = c
		return nil
	})
	if err != nil {
		metrics.TransitionsRejected.WithLabelValues(models.EntityTypeChange, op).Inc()
		return nil, err
	}

	if entry != nil && entry.PreviousStatus != nil && entry.NewStatus != nil {
		metrics.TransitionsTotal.WithLabelValues(models.EntityTypeChange, *entry.PreviousStatus, *entry.NewStatus).Inc()
		eventType := events.EventWorkflowTransition
		if op == "request-closure" {
			eventType = events.EventClosureRequested
		}
		_ = s.publisher.Publish(ctx, events.StreamWorkflow, events.Event{
			Type: eventType,
			Payload: map[string]any{
				"entity_type":     models.EntityTypeChange,
				"entity_id":       id.String(),
				"op":              op,
				"previous_status": *entry.PreviousStatus,
				"new_status":      *entry.NewStatus,
			},
		})
	}

	return updated, nil
}

func (s *ChangeService) Create(ctx context.Context, actor uuid.UUID, c *models.Change) error {
	now := time.Now()
	c.Status = models.ChangeWorkflow.Initial
	c.RequestedBy = &actor
	c.RequestDate = &now
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	return s.changeRepo.Create(ctx, c)
}

func (s *ChangeService) Get(ctx context.Context, id uuid.UUID) (*models.Change, error) {
	return s.changeRepo.GetByID(ctx, id)
}

func (s *ChangeService) List(ctx context.Context, f repositories.ChangeFilter) ([]models.Change, error) {
	return s.changeRepo.List(ctx, f)
}

func (s *ChangeService) RequestApproval(ctx context.Context, id, actor uuid.UUID, justification string) (*models.Change, error) {
	return s.transition(ctx, id, "request-approval", func(c *models.Change) (*models.EntityLog, error) {
		return c.RequestApproval(actor, justification, time.Now())
	})
}

func (s *ChangeService) Approve(ctx context.Context, id, actor uuid.UUID, comments string) (*models.Change, error) {
	return s.transition(ctx, id, "approve", func(c *models.Change) (*models.EntityLog, error) {
		return c.Approve(actor, comments, time.Now())
	})
}

func (s *ChangeService) Reject(ctx context.Context, id, actor uuid.UUID, reason string) (*models.Change, error) {
	return s.transition(ctx, id, "reject", func(c *models.Change) (*models.EntityLog, error) {
		return c.Reject(actor, reason, time.Now())
	})
}

func (s *ChangeService) RequestClosure(ctx context.Context, id, actor uuid.UUID, justification string) (*models.Change, error) {
	return s.transition(ctx, id, "request-closure", func(c *models.Change) (*models.EntityLog, error) {
		return c.RequestClosure(actor, justification, time.Now())
	})
}

func (s *ChangeService) ApproveClosure(ctx context.Context, id, actor uuid.UUID, comments string) (*models.Change, error) {
	return s.transition(ctx, id, "approve-closure", func(c *models.Change) (*models.EntityLog, error) {
		return c.ApproveClosure(actor, comments, time.Now())
	})
}

func (s *ChangeService) RejectClosure(ctx context.Context, id, actor uuid.UUID, reason string) (*models.Change, error) {
	return s.transition(ctx, id, "reject-closure", func(c *models.Change) (*models.EntityLog, error) {
		return c.RejectClosure(actor, reason)
	})
}

// Update is the generic field edit. Status moves through it only for the
// mark-implemented edge; everything else gated is refused in the model.
func (s *ChangeService) Update(ctx context.Context, id, actor uuid.UUID, upd models.ChangeUpdate) (*models.Change, error) {
	return s.transition(ctx, id, "update", func(c *models.Change) (*models.EntityLog, error) {
		return c.ApplyUpdate(actor, upd, time.Now())
	})
}

// Delete removes the change and cascades to its actions and log rows.
func (s *ChangeService) Delete(ctx context.Context, id uuid.UUID) error {
	return repositories.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := s.changeRepo.GetByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}
		if err := s.actionRepo.DeleteByEntityTx(ctx, tx, models.EntityTypeChange, id); err != nil {
			return err
		}
		if err := s.logRepo.DeleteByEntityTx(ctx, tx, models.EntityTypeChange, id); err != nil {
			return err
		}
		return s.changeRepo.DeleteTx(ctx, tx, id)
	})
}
