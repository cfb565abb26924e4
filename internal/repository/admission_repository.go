package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
)

// AdmissionRepository handles admission request data access.
type AdmissionRepository struct {
	pool *pgxpool.Pool
}

// NewAdmissionRepository creates a new AdmissionRepository.
func NewAdmissionRepository(pool *pgxpool.Pool) *AdmissionRepository {
	return &AdmissionRepository{pool: pool}
}

// Create inserts a new admission request in PENDING state.
func (r *AdmissionRepository) Create(ctx context.Context, a *model.AdmissionRequest) error {
	a.Status = model.AdmissionStatusPending
	return r.pool.QueryRow(ctx,
		`INSERT INTO admission_requests (student_name, email, phone, class_grade, learning_goal, status)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		 RETURNING id, created_at`,
		a.StudentName, a.Email, a.Phone, a.ClassGrade, a.LearningGoal, a.Status,
	).Scan(&a.ID, &a.CreatedAt)
}

// List retrieves admission requests with pagination, optionally filtered by
// status. An empty status returns everything.
func (r *AdmissionRepository) List(ctx context.Context, status model.AdmissionStatus, page, perPage int) ([]model.AdmissionRequest, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM admission_requests WHERE ($1 = '' OR status = $1)`,
		string(status),
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, student_name, email, phone, class_grade, COALESCE(learning_goal, ''), status, created_at
		 FROM admission_requests
		 WHERE ($1 = '' OR status = $1)
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		string(status), perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []model.AdmissionRequest
	for rows.Next() {
		var a model.AdmissionRequest
		if err := rows.Scan(&a.ID, &a.StudentName, &a.Email, &a.Phone, &a.ClassGrade, &a.LearningGoal, &a.Status, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

// UpdateStatus moves a request to a new review state. Returns the number of
// rows affected so callers can distinguish a missing id.
func (r *AdmissionRepository) UpdateStatus(ctx context.Context, id int, status model.AdmissionStatus) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE admission_requests SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
