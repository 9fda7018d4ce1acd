package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pmtrack/backend/internal/models"
)

// LogRepo appends and reads entity history. The table is append-only: no
// update or delete is exposed for individual rows; rows go away only when
// the parent entity is deleted.
type LogRepo struct {
	pool *pgxpool.Pool
}

func NewLogRepo(pool *pgxpool.Pool) *LogRepo {
	return &LogRepo{pool: pool}
}

func (r *LogRepo) Append(ctx context.Context, e *models.EntityLog) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO entity_logs (entity_type, entity_id, log_type, previous_status, new_status, comments, logged_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, log_date
	`, e.EntityType, e.EntityID, e.LogType, e.PreviousStatus, e.NewStatus, e.Comments, e.LoggedBy,
	).Scan(&e.ID, &e.LogDate)
}

// AppendTx inserts the log row inside the transition's transaction so the
// entity update and its log row commit or fail together.
func (r *LogRepo) AppendTx(ctx context.Context, tx pgx.Tx, e *models.EntityLog) error {
	return tx.QueryRow(ctx, `
		INSERT INTO entity_logs (entity_type, entity_id, log_type, previous_status, new_status, comments, logged_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, log_date
	`, e.EntityType, e.EntityID, e.LogType, e.PreviousStatus, e.NewStatus, e.Comments, e.LoggedBy,
	).Scan(&e.ID, &e.LogDate)
}

// ListByEntity returns log rows newest-first for display.
func (r *LogRepo) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.EntityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, entity_type, entity_id, log_type, previous_status, new_status, comments, logged_by, log_date
		FROM entity_logs WHERE entity_type = $1 AND entity_id = $2
		ORDER BY log_date DESC, id DESC LIMIT $3 OFFSET $4
	`, entityType, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLogs(rows)
}

// ListHistory returns log rows oldest-first for replaying an entity's
// status history.
func (r *LogRepo) ListHistory(ctx context.Context, entityType string, entityID uuid.UUID) ([]models.EntityLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entity_type, entity_id, log_type, previous_status, new_status, comments, logged_by, log_date
		FROM entity_logs WHERE entity_type = $1 AND entity_id = $2
		ORDER BY log_date ASC, id ASC
	`, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLogs(rows)
}

func collectLogs(rows pgx.Rows) ([]models.EntityLog, error) {
	var logs []models.EntityLog
	for rows.Next() {
		var l models.EntityLog
		if err := rows.Scan(&l.ID, &l.EntityType, &l.EntityID, &l.LogType,
			&l.PreviousStatus, &l.NewStatus, &l.Comments, &l.LoggedBy, &l.LogDate); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// DeleteByEntityTx removes a parent's log rows as part of the parent's
// cascade delete.
func (r *LogRepo) DeleteByEntityTx(ctx context.Context, tx pgx.Tx, entityType string, entityID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM entity_logs WHERE entity_type = $1 AND entity_id = $2`, entityType, entityID)
	return err
}
