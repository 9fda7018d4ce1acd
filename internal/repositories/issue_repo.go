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

const issueColumns = `id, project_id, title, description, status, priority, severity,
	raised_by, assigned_to, due_date, resolution, created_at, updated_at`

type IssueRepo struct {
	pool *pgxpool.Pool
}

func NewIssueRepo(pool *pgxpool.Pool) *IssueRepo {
	return &IssueRepo{pool: pool}
}

func scanIssue(row pgx.Row) (*models.Issue, error) {
	var i models.Issue
	err := row.Scan(&i.ID, &i.ProjectID, &i.Title, &i.Description, &i.Status, &i.Priority, &i.Severity,
		&i.RaisedBy, &i.AssignedTo, &i.DueDate, &i.Resolution, &i.CreatedAt, &i.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *IssueRepo) Create(ctx context.Context, i *models.Issue) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO issues (project_id, title, description, status, priority, severity,
		                    raised_by, assigned_to, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, i.ProjectID, i.Title, i.Description, i.Status, i.Priority, i.Severity,
		i.RaisedBy, i.AssignedTo, i.DueDate,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
}

func (r *IssueRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	return scanIssue(r.pool.QueryRow(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE id = $1`, id))
}

func (r *IssueRepo) UpdateTx(ctx context.Context, tx pgx.Tx, i *models.Issue) error {
	_, err := tx.Exec(ctx, `
		UPDATE issues SET title = $1, description = $2, status = $3, priority = $4, severity = $5,
		       assigned_to = $6, due_date = $7, resolution = $8, updated_at = now()
		WHERE id = $9
	`, i.Title, i.Description, i.Status, i.Priority, i.Severity,
		i.AssignedTo, i.DueDate, i.Resolution, i.ID)
	return err
}

func (r *IssueRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM issues WHERE id = $1`, id)
	return err
}

type ItemFilter struct {
	ProjectID  *uuid.UUID
	Status     *string
	AssignedTo *uuid.UUID
	Limit      int
	Offset     int
}

func (f ItemFilter) whereClause(argIdx int) (string, []any, int) {
	args := []any{}
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
	if f.AssignedTo != nil {
		where = append(where, fmt.Sprintf("assigned_to = $%d", argIdx))
		args = append(args, *f.AssignedTo)
		argIdx++
	}

	if len(where) == 0 {
		return "", args, argIdx
	}
	clause := " WHERE "
	for i, w := range where {
		if i > 0 {
			clause += " AND "
		}
		clause += w
	}
	return clause, args, argIdx
}

func (f ItemFilter) limit() int {
	if f.Limit <= 0 || f.Limit > 100 {
		return 20
	}
	return f.Limit
}

func (r *IssueRepo) List(ctx context.Context, f ItemFilter) ([]models.Issue, error) {
	clause, args, argIdx := f.whereClause(1)
	query := `SELECT ` + issueColumns + ` FROM issues` + clause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, f.limit(), f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []models.Issue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, *i)
	}
	return issues, nil
}
