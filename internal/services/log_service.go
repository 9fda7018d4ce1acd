package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/events"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/repositories"
	"github.com/pmtrack/backend/internal/workflow"
)

// LogService serves the audit trail for every tracked entity: comment
// appends and history reads. Status-change rows are written by the
// workflow services inside their transactions, never from here.
type LogService struct {
	logRepo    *repositories.LogRepo
	lookupRepo *repositories.LookupRepo
	publisher  events.Publisher
	log        *zap.Logger
}

func NewLogService(
	logRepo *repositories.LogRepo,
	lookupRepo *repositories.LookupRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *LogService {
	return &LogService{
		logRepo:    logRepo,
		lookupRepo: lookupRepo,
		publisher:  publisher,
		log:        log,
	}
}

// Comment appends one Comment row to the parent's log.
func (s *LogService) Comment(ctx context.Context, entityType string, entityID, actor uuid.UUID, comments string) (*models.EntityLog, error) {
	if err := workflow.RequireText("comments", comments); err != nil {
		return nil, err
	}
	if err := s.lookupRepo.EntityExists(ctx, entityType, entityID); err != nil {
		return nil, err
	}

	entry := &models.EntityLog{
		EntityType: entityType,
		EntityID:   entityID,
		LogType:    models.LogTypeComment,
		Comments:   &comments,
		LoggedBy:   &actor,
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, events.StreamWorkflow, events.Event{
		Type: events.EventCommentAdded,
		Payload: map[string]any{
			"entity_type": entityType,
			"entity_id":   entityID.String(),
		},
	})
	return entry, nil
}

// List returns the parent's log newest-first.
func (s *LogService) List(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.EntityLog, error) {
	if err := s.lookupRepo.EntityExists(ctx, entityType, entityID); err != nil {
		return nil, err
	}
	return s.logRepo.ListByEntity(ctx, entityType, entityID, limit, offset)
}

// History returns the parent's log oldest-first, the order used to replay
// status transitions.
func (s *LogService) History(ctx context.Context, entityType string, entityID uuid.UUID) ([]models.EntityLog, error) {
	if err := s.lookupRepo.EntityExists(ctx, entityType, entityID); err != nil {
		return nil, err
	}
	return s.logRepo.ListHistory(ctx, entityType, entityID)
}
