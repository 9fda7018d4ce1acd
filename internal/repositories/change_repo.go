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

const changeColumns = `id, project_id, title, description, status, priority,
	requested_by, approved_by, rejected_by,
	request_date, approval_date, implementation_date, closure_date,
	approval_justification, approval_comments, rejection_reason, implementation_summary,
	closure_pending, closure_requested_by, closure_justification,
	created_at, updated_at`

type ChangeRepo struct {
	pool *pgxpool.Pool
}

func NewChangeRepo(pool *pgxpool.Pool) *ChangeRepo {
	return &ChangeRepo{pool: pool}
}

func scanChange(row pgx.Row) (*models.Change, error) {
	var c models.Change
	err := row.Scan(&c.ID, &c.ProjectID, &c.Title, &c.Description, &c.Status, &c.Priority,
		&c.RequestedBy, &c.ApprovedBy, &c.RejectedBy,
		&c.RequestDate, &c.ApprovalDate, &c.ImplementationDate, &c.ClosureDate,
		&c.ApprovalJustification, &c.ApprovalComments, &c.RejectionReason, &c.ImplementationSummary,
		&c.ClosurePending, &c.ClosureRequestedBy, &c.ClosureJustification,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChangeRepo) Create(ctx context.Context, c *models.Change) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO changes (project_id, title, description, status, priority, requested_by, request_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, c.ProjectID, c.Title, c.Description, c.Status, c.Priority, c.RequestedBy, c.RequestDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ChangeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Change, error) {
	return scanChange(r.pool.QueryRow(ctx,
		`SELECT `+changeColumns+` FROM changes WHERE id = $1`, id))
}

// GetByIDForUpdate locks the row for the duration of the transaction so the
// guard's read-validate-write sequence cannot interleave with another
// transition on the same change.
func (r *ChangeRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Change, error) {
	return scanChange(tx.QueryRow(ctx,
		`SELECT `+changeColumns+` FROM changes WHERE id = $1 FOR UPDATE`, id))
}

// UpdateWorkflowTx persists the mutable columns in one statement, inside
// the caller's transaction. The row was read under FOR UPDATE, so writing
// the whole struct back cannot clobber a concurrent edit.
func (r *ChangeRepo) UpdateWorkflowTx(ctx context.Context, tx pgx.Tx, c *models.Change) error {
	_, err := tx.Exec(ctx, `
		UPDATE changes SET title = $1, description = $2, priority = $3, status = $4,
		       requested_by = $5, approved_by = $6, rejected_by = $7,
		       request_date = $8, approval_date = $9, implementation_date = $10, closure_date = $11,
		       approval_justification = $12, approval_comments = $13, rejection_reason = $14,
		       implementation_summary = $15,
		       closure_pending = $16, closure_requested_by = $17, closure_justification = $18,
		       updated_at = now()
		WHERE id = $19
	`, c.Title, c.Description, c.Priority, c.Status,
		c.RequestedBy, c.ApprovedBy, c.RejectedBy,
		c.RequestDate, c.ApprovalDate, c.ImplementationDate, c.ClosureDate,
		c.ApprovalJustification, c.ApprovalComments, c.RejectionReason,
		c.ImplementationSummary,
		c.ClosurePending, c.ClosureRequestedBy, c.ClosureJustification,
		c.ID)
	return err
}

func (r *ChangeRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM changes WHERE id = $1`, id)
	return err
}

type ChangeFilter struct {
	ProjectID   *uuid.UUID
	Status      *string
	RequestedBy *uuid.UUID
	Limit       int
	Offset      int
}

func (r *ChangeRepo) List(ctx context.Context, f ChangeFilter) ([]models.Change, error) {
	query := `SELECT ` + changeColumns + ` FROM changes`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.ProjectID != nil {
		where = append(where, fmt.Sprintf("project_id = $%d", argIdx))
		args = append(args, *f.ProjectID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	if f.RequestedBy != nil {
		where = append(where, fmt.Sprintf("requested_by = $%d", argIdx))
		args = append(args, *f.RequestedBy)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []models.Change
	for rows.Next() {
		c, err := scanChange(rows)
		if err != nil {
			return nil, err
		}
		changes = append(changes, *c)
	}
	return changes, nil
}
