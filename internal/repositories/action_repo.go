package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pmtrack/backend/internal/apperr"
	"github.com/pmtrack/backend/internal/models"
)

const actionColumns = `id, entity_type, entity_id, description, status,
	assigned_to, due_date, priority, created_at, updated_at`

type ActionRepo struct {
	pool *pgxpool.Pool
}

func NewActionRepo(pool *pgxpool.Pool) *ActionRepo {
	return &ActionRepo{pool: pool}
}

func scanAction(row pgx.Row) (*models.Action, error) {
	var a models.Action
	err := row.Scan(&a.ID, &a.EntityType, &a.EntityID, &a.Description, &a.Status,
		&a.AssignedTo, &a.DueDate, &a.Priority, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActionRepo) Create(ctx context.Context, a *models.Action) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO actions (entity_type, entity_id, description, status, assigned_to, due_date, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, a.EntityType, a.EntityID, a.Description, a.Status, a.AssignedTo, a.DueDate, a.Priority,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *ActionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Action, error) {
	return scanAction(r.pool.QueryRow(ctx,
		`SELECT `+actionColumns+` FROM actions WHERE id = $1`, id))
}

func (r *ActionRepo) Update(ctx context.Context, a *models.Action) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE actions SET description = $1, status = $2, assigned_to = $3,
		       due_date = $4, priority = $5, updated_at = now()
		WHERE id = $6
	`, a.Description, a.Status, a.AssignedTo, a.DueDate, a.Priority, a.ID)
	return err
}

func (r *ActionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM actions WHERE id = $1`, id)
	return err
}

func (r *ActionRepo) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.Action, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+actionColumns+` FROM actions
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4
	`, entityType, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []models.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, *a)
	}
	return actions, nil
}

// DeleteByEntityTx removes a parent's actions as part of its cascade delete.
func (r *ActionRepo) DeleteByEntityTx(ctx context.Context, tx pgx.Tx, entityType string, entityID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM actions WHERE entity_type = $1 AND entity_id = $2`, entityType, entityID)
	return err
}

// OverdueCount counts open actions past their due date.
func (r *ActionRepo) OverdueCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT count(*) FROM actions
		WHERE status IN ('%s', '%s') AND due_date IS NOT NULL AND due_date < now()
	`, models.ActionStatusPending, models.ActionStatusInProgress)).Scan(&n)
	return n, err
}
