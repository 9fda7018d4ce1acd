package services

import (
	"github.com/google/uuid"

	"github.com/pmtrack/backend/internal/models"
)

// itemStatusLog builds the Status Change row issues, escalations and
// faults write when a generic update actually moves their status.
func itemStatusLog(entityType string, id uuid.UUID, prev, next string, actor uuid.UUID) *models.EntityLog {
	return &models.EntityLog{
		EntityType:     entityType,
		EntityID:       id,
		LogType:        models.LogTypeStatusChange,
		PreviousStatus: &prev,
		NewStatus:      &next,
		LoggedBy:       &actor,
	}
}
