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

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO projects (code, name, description, manager_id, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.Code, p.Name, p.Description, p.ManagerID, p.Status, p.StartDate, p.EndDate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var p models.Project
	err := r.pool.QueryRow(ctx, `
		SELECT id, code, name, description, manager_id, status, start_date, end_date, created_at, updated_at
		FROM projects WHERE id = $1
	`, id).Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.ManagerID, &p.Status,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) Update(ctx context.Context, p *models.Project) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE projects SET code = $1, name = $2, description = $3, manager_id = $4,
		       status = $5, start_date = $6, end_date = $7, updated_at = now()
		WHERE id = $8
	`, p.Code, p.Name, p.Description, p.ManagerID, p.Status, p.StartDate, p.EndDate, p.ID)
	return err
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

// TrackedItemCount counts issues, risks, changes, escalations and faults
// still attached to a project. Deletion is refused while it is non-zero.
func (r *ProjectRepo) TrackedItemCount(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT count(*) FROM issues WHERE project_id = $1)
		     + (SELECT count(*) FROM risks WHERE project_id = $1)
		     + (SELECT count(*) FROM changes WHERE project_id = $1)
		     + (SELECT count(*) FROM escalations WHERE project_id = $1)
		     + (SELECT count(*) FROM faults WHERE project_id = $1)
	`, id).Scan(&n)
	return n, err
}

type ProjectFilter struct {
	Status *string
	Limit  int
	Offset int
}

func (r *ProjectRepo) List(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	query := `
		SELECT id, code, name, description, manager_id, status, start_date, end_date, created_at, updated_at
		FROM projects
	`
	args := []any{}
	argIdx := 1

	if f.Status != nil {
		query += fmt.Sprintf(" WHERE status = $%d", argIdx)
		args = append(args, *f.Status)
		argIdx++
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

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.ManagerID, &p.Status,
			&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}
