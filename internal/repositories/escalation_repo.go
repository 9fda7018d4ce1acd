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

const escalationColumns = `id, project_id, title, description, status, priority,
	escalated_to, escalation_level,
	raised_by, assigned_to, due_date, resolution, created_at, updated_at`

type EscalationRepo struct {
	pool *pgxpool.Pool
}

func NewEscalationRepo(pool *pgxpool.Pool) *EscalationRepo {
	return &EscalationRepo{pool: pool}
}

func scanEscalation(row pgx.Row) (*models.Escalation, error) {
	var e models.Escalation
	err := row.Scan(&e.ID, &e.ProjectID, &e.Title, &e.Description, &e.Status, &e.Priority,
		&e.EscalatedTo, &e.EscalationLevel,
		&e.RaisedBy, &e.AssignedTo, &e.DueDate, &e.Resolution, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EscalationRepo) Create(ctx context.Context, e *models.Escalation) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO escalations (project_id, title, description, status, priority,
		                         escalated_to, escalation_level, raised_by, assigned_to, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, e.ProjectID, e.Title, e.Description, e.Status, e.Priority,
		e.EscalatedTo, e.EscalationLevel, e.RaisedBy, e.AssignedTo, e.DueDate,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EscalationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Escalation, error) {
	return scanEscalation(r.pool.QueryRow(ctx,
		`SELECT `+escalationColumns+` FROM escalations WHERE id = $1`, id))
}

func (r *EscalationRepo) UpdateTx(ctx context.Context, tx pgx.Tx, e *models.Escalation) error {
	_, err := tx.Exec(ctx, `
		UPDATE escalations SET title = $1, description = $2, status = $3, priority = $4,
		       escalated_to = $5, escalation_level = $6,
		       assigned_to = $7, due_date = $8, resolution = $9, updated_at = now()
		WHERE id = $10
	`, e.Title, e.Description, e.Status, e.Priority,
		e.EscalatedTo, e.EscalationLevel,
		e.AssignedTo, e.DueDate, e.Resolution, e.ID)
	return err
}

func (r *EscalationRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM escalations WHERE id = $1`, id)
	return err
}

func (r *EscalationRepo) List(ctx context.Context, f ItemFilter) ([]models.Escalation, error) {
	clause, args, argIdx := f.whereClause(1)
	query := `SELECT ` + escalationColumns + ` FROM escalations` + clause +
		fmt.Sprintf(" ORDER BY escalation_level DESC, created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, f.limit(), f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var escalations []models.Escalation
	for rows.Next() {
		e, err := scanEscalation(rows)
		if err != nil {
			return nil, err
		}
		escalations = append(escalations, *e)
	}
	return escalations, nil
}
