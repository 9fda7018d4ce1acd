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

const faultColumns = `id, project_id, title, description, status, priority,
	severity, root_cause, detected_in,
	raised_by, assigned_to, due_date, resolution, created_at, updated_at`

type FaultRepo struct {
	pool *pgxpool.Pool
}

func NewFaultRepo(pool *pgxpool.Pool) *FaultRepo {
	return &FaultRepo{pool: pool}
}

func scanFault(row pgx.Row) (*models.Fault, error) {
	var f models.Fault
	err := row.Scan(&f.ID, &f.ProjectID, &f.Title, &f.Description, &f.Status, &f.Priority,
		&f.Severity, &f.RootCause, &f.DetectedIn,
		&f.RaisedBy, &f.AssignedTo, &f.DueDate, &f.Resolution, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FaultRepo) Create(ctx context.Context, f *models.Fault) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO faults (project_id, title, description, status, priority,
		                    severity, root_cause, detected_in, raised_by, assigned_to, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, f.ProjectID, f.Title, f.Description, f.Status, f.Priority,
		f.Severity, f.RootCause, f.DetectedIn, f.RaisedBy, f.AssignedTo, f.DueDate,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (r *FaultRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Fault, error) {
	return scanFault(r.pool.QueryRow(ctx,
		`SELECT `+faultColumns+` FROM faults WHERE id = $1`, id))
}

func (r *FaultRepo) UpdateTx(ctx context.Context, tx pgx.Tx, f *models.Fault) error {
	_, err := tx.Exec(ctx, `
		UPDATE faults SET title = $1, description = $2, status = $3, priority = $4,
		       severity = $5, root_cause = $6, detected_in = $7,
		       assigned_to = $8, due_date = $9, resolution = $10, updated_at = now()
		WHERE id = $11
	`, f.Title, f.Description, f.Status, f.Priority,
		f.Severity, f.RootCause, f.DetectedIn,
		f.AssignedTo, f.DueDate, f.Resolution, f.ID)
	return err
}

func (r *FaultRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM faults WHERE id = $1`, id)
	return err
}

func (r *FaultRepo) List(ctx context.Context, f ItemFilter) ([]models.Fault, error) {
	clause, args, argIdx := f.whereClause(1)
	query := `SELECT ` + faultColumns + ` FROM faults` + clause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, f.limit(), f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faults []models.Fault
	for rows.Next() {
		fa, err := scanFault(rows)
		if err != nil {
			return nil, err
		}
		faults = append(faults, *fa)
	}
	return faults, nil
}
