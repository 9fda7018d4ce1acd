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

const riskColumns = `id, project_id, title, description, status,
	probability, impact, score, owner_id, mitigation_plan,
	identified_date, target_date,
	closure_pending, closure_requested_by, closure_justification, closure_date,
	created_at, updated_at`

type RiskRepo struct {
	pool *pgxpool.Pool
}

func NewRiskRepo(pool *pgxpool.Pool) *RiskRepo {
	return &RiskRepo{pool: pool}
}

func scanRisk(row pgx.Row) (*models.Risk, error) {
	var r models.Risk
	err := row.Scan(&r.ID, &r.ProjectID, &r.Title, &r.Description, &r.Status,
		&r.Probability, &r.Impact, &r.Score, &r.OwnerID, &r.MitigationPlan,
		&r.IdentifiedDate, &r.TargetDate,
		&r.ClosurePending, &r.ClosureRequestedBy, &r.ClosureJustification, &r.ClosureDate,
		&r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *RiskRepo) Create(ctx context.Context, rk *models.Risk) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO risks (project_id, title, description, status, probability, impact, score,
		                   owner_id, mitigation_plan, identified_date, target_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, rk.ProjectID, rk.Title, rk.Description, rk.Status, rk.Probability, rk.Impact, rk.Score,
		rk.OwnerID, rk.MitigationPlan, rk.IdentifiedDate, rk.TargetDate,
	).Scan(&rk.ID, &rk.CreatedAt, &rk.UpdatedAt)
}

func (r *RiskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Risk, error) {
	return scanRisk(r.pool.QueryRow(ctx,
		`SELECT `+riskColumns+` FROM risks WHERE id = $1`, id))
}

func (r *RiskRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Risk, error) {
	return scanRisk(tx.QueryRow(ctx,
		`SELECT `+riskColumns+` FROM risks WHERE id = $1 FOR UPDATE`, id))
}

func (r *RiskRepo) UpdateWorkflowTx(ctx context.Context, tx pgx.Tx, rk *models.Risk) error {
	_, err := tx.Exec(ctx, `
		UPDATE risks SET status = $1,
		       closure_pending = $2, closure_requested_by = $3,
		       closure_justification = $4, closure_date = $5,
		       updated_at = now()
		WHERE id = $6
	`, rk.Status, rk.ClosurePending, rk.ClosureRequestedBy,
		rk.ClosureJustification, rk.ClosureDate, rk.ID)
	return err
}

// UpdateFieldsTx persists the plain editable columns plus a status that has
// already passed edge validation in the model guard. Runs inside the
// caller's transaction so the matching log row commits with it.
func (r *RiskRepo) UpdateFieldsTx(ctx context.Context, tx pgx.Tx, rk *models.Risk) error {
	_, err := tx.Exec(ctx, `
		UPDATE risks SET title = $1, description = $2, status = $3,
		       probability = $4, impact = $5, score = $6,
		       owner_id = $7, mitigation_plan = $8, target_date = $9,
		       updated_at = now()
		WHERE id = $10
	`, rk.Title, rk.Description, rk.Status,
		rk.Probability, rk.Impact, rk.Score,
		rk.OwnerID, rk.MitigationPlan, rk.TargetDate, rk.ID)
	return err
}

func (r *RiskRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM risks WHERE id = $1`, id)
	return err
}

type RiskFilter struct {
	ProjectID     *uuid.UUID
	Status        *string
	OwnerID       *uuid.UUID
	MinScore      *int
	ExcludeClosed bool
	Limit         int
	Offset        int
}

func (r *RiskRepo) List(ctx context.Context, f RiskFilter) ([]models.Risk, error) {
	query := `SELECT ` + riskColumns + ` FROM risks`
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
	if f.OwnerID != nil {
		where = append(where, fmt.Sprintf("owner_id = $%d", argIdx))
		args = append(args, *f.OwnerID)
		argIdx++
	}
	if f.MinScore != nil {
		where = append(where, fmt.Sprintf("score >= $%d", argIdx))
		args = append(args, *f.MinScore)
		argIdx++
	}
	if f.ExcludeClosed {
		where = append(where, fmt.Sprintf("status <> $%d", argIdx))
		args = append(args, models.RiskStatusClosed)
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
	query += fmt.Sprintf(" ORDER BY score DESC, created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var risks []models.Risk
	for rows.Next() {
		rk, err := scanRisk(rows)
		if err != nil {
			return nil, err
		}
		risks = append(risks, *rk)
	}
	return risks, nil
}
