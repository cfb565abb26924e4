package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
)

// ContextRepository handles program context data access.
type ContextRepository struct {
	pool *pgxpool.Pool
}

// NewContextRepository creates a new ContextRepository.
func NewContextRepository(pool *pgxpool.Pool) *ContextRepository {
	return &ContextRepository{pool: pool}
}

// List retrieves all program contexts.
func (r *ContextRepository) List(ctx context.Context) ([]model.ProgramContext, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, COALESCE(description, '') FROM program_contexts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contexts []model.ProgramContext
	for rows.Next() {
		var c model.ProgramContext
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		contexts = append(contexts, c)
	}
	return contexts, rows.Err()
}

// Create inserts a program context.
func (r *ContextRepository) Create(ctx context.Context, c *model.ProgramContext) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO program_contexts (name, description)
		 VALUES ($1, NULLIF($2, ''))
		 RETURNING id`,
		c.Name, c.Description,
	).Scan(&c.ID)
}

// Update rewrites a program context.
func (r *ContextRepository) Update(ctx context.Context, c *model.ProgramContext) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE program_contexts SET name = $2, description = NULLIF($3, '') WHERE id = $1`,
		c.ID, c.Name, c.Description,
	)
	return err
}

// Delete removes a program context. Resource links cascade.
func (r *ContextRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM program_contexts WHERE id = $1`, id)
	return err
}
