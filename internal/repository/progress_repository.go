package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
)

// ProgressRepository handles student progress data access.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// ListByUser retrieves all progress rows for a user.
func (r *ProgressRepository) ListByUser(ctx context.Context, userID int) ([]model.StudentProgress, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, resource_id, is_completed, last_accessed
		 FROM student_progress
		 WHERE user_id = $1
		 ORDER BY last_accessed DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.StudentProgress
	for rows.Next() {
		var p model.StudentProgress
		if err := rows.Scan(&p.UserID, &p.ResourceID, &p.IsCompleted, &p.LastAccessed); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// Touch upserts a progress row, refreshing the access time. Completion is
// only ever raised, never cleared, by this path.
func (r *ProgressRepository) Touch(ctx context.Context, userID, resourceID int, completed bool) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO student_progress (user_id, resource_id, is_completed, last_accessed)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id, resource_id) DO UPDATE SET
		     is_completed = student_progress.is_completed OR $3,
		     last_accessed = NOW()`,
		userID, resourceID, completed,
	)
	return err
}

// BulkMarkCompleted upserts a batch of completion rows in a single
// statement. Used by the progress worker when flushing its queue.
func (r *ProgressRepository) BulkMarkCompleted(ctx context.Context, userIDs, resourceIDs []int) error {
	if len(userIDs) == 0 {
		return nil
	}
	if len(userIDs) != len(resourceIDs) {
		return fmt.Errorf("mismatched batch lengths: %d users, %d resources", len(userIDs), len(resourceIDs))
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO student_progress (user_id, resource_id, is_completed, last_accessed)
		 SELECT u.user_id, u.resource_id, TRUE, NOW()
		 FROM UNNEST($1::int[], $2::int[]) AS u (user_id, resource_id)
		 ON CONFLICT (user_id, resource_id) DO UPDATE SET
		     is_completed = TRUE,
		     last_accessed = NOW()`,
		userIDs, resourceIDs,
	)
	return err
}
