package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pmtrack/backend/internal/apperr"
	"github.com/pmtrack/backend/internal/models"
)

// entityTables maps the entity-type discriminator to its table. Log and
// action rows are keyed polymorphically, so parent existence is checked
// through this map; entity types never come from raw request input without
// validation first.
var entityTables = map[string]string{
	models.EntityTypeIssue:      "issues",
	models.EntityTypeRisk:       "risks",
	models.EntityTypeChange:     "changes",
	models.EntityTypeEscalation: "escalations",
	models.EntityTypeFault:      "faults",
}

type LookupRepo struct {
	pool *pgxpool.Pool
}

func NewLookupRepo(pool *pgxpool.Pool) *LookupRepo {
	return &LookupRepo{pool: pool}
}

// EntityExists returns ErrNotFound when the parent row is missing.
func (r *LookupRepo) EntityExists(ctx context.Context, entityType string, id uuid.UUID) error {
	table, ok := entityTables[entityType]
	if !ok {
		return apperr.Validation("entity_type", "unknown entity type "+entityType)
	}

	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM `+table+` WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return err
}
