package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DashboardRepo struct {
	pool *pgxpool.Pool
}

func NewDashboardRepo(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// StatusCounts returns status -> count for one entity table. The table
// name comes from a fixed internal list, never from request input.
func (r *DashboardRepo) StatusCounts(ctx context.Context, table string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM `+table+` GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// OpenIssueAges returns the age in days of every issue not yet closed,
// for aging-bucket aggregation.
func (r *DashboardRepo) OpenIssueAges(ctx context.Context) ([]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(DAY FROM now() - created_at)::int
		FROM issues WHERE status <> 'Closed'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ages []int
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		ages = append(ages, d)
	}
	return ages, rows.Err()
}

// PendingApprovals counts changes awaiting an approval decision plus
// changes and risks with an open closure request.
func (r *DashboardRepo) PendingApprovals(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT count(*) FROM changes WHERE status = 'Under Review')
		     + (SELECT count(*) FROM changes WHERE closure_pending)
		     + (SELECT count(*) FROM risks WHERE closure_pending)
	`).Scan(&n)
	return n, err
}
