package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
)

// ResourceRepository handles learning resource data access.
type ResourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository creates a new ResourceRepository.
func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

const resourceColumns = `id, title, resource_type, node_id, COALESCE(drive_file_id, ''), COALESCE(external_url, ''), COALESCE(content_text, ''), sort_order, created_at`

func scanResource(row interface{ Scan(...any) error }) (*model.Resource, error) {
	res := &model.Resource{}
	err := row.Scan(&res.ID, &res.Title, &res.ResourceType, &res.NodeID,
		&res.DriveFileID, &res.ExternalURL, &res.ContentText, &res.SortOrder, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetByID retrieves a resource with its context tags.
func (r *ResourceRepository) GetByID(ctx context.Context, id int) (*model.Resource, error) {
	res, err := scanResource(r.pool.QueryRow(ctx,
		`SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT context_id FROM resource_contexts WHERE resource_id = $1 ORDER BY context_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		if err := rows.Scan(&cid); err != nil {
			return nil, err
		}
		res.ContextIDs = append(res.ContextIDs, cid)
	}
	return res, rows.Err()
}

// ListByNode retrieves resources hanging off one node.
func (r *ResourceRepository) ListByNode(ctx context.Context, nodeID int) ([]model.Resource, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resourceColumns+` FROM resources WHERE node_id = $1 ORDER BY sort_order, title`, nodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *res)
	}
	return resources, rows.Err()
}

// Create inserts a resource and its context links in one transaction.
func (r *ResourceRepository) Create(ctx context.Context, res *model.Resource) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO resources (title, resource_type, node_id, drive_file_id, external_url, content_text, sort_order)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
		 RETURNING id, created_at`,
		res.Title, res.ResourceType, res.NodeID, res.DriveFileID, res.ExternalURL, res.ContentText, res.SortOrder,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return err
	}

	for _, cid := range res.ContextIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO resource_contexts (resource_id, context_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, res.ID, cid,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update rewrites a resource row and replaces its context links when
// replaceContexts is set.
func (r *ResourceRepository) Update(ctx context.Context, res *model.Resource, replaceContexts bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE resources
		 SET title = $2, node_id = $3, drive_file_id = NULLIF($4, ''),
		     external_url = NULLIF($5, ''), content_text = NULLIF($6, ''), sort_order = $7
		 WHERE id = $1`,
		res.ID, res.Title, res.NodeID, res.DriveFileID, res.ExternalURL, res.ContentText, res.SortOrder,
	)
	if err != nil {
		return err
	}

	if replaceContexts {
		if _, err := tx.Exec(ctx, `DELETE FROM resource_contexts WHERE resource_id = $1`, res.ID); err != nil {
			return err
		}
		for _, cid := range res.ContextIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO resource_contexts (resource_id, context_id) VALUES ($1, $2)`,
				res.ID, cid,
			); err != nil {
				return fmt.Errorf("link context %d: %w", cid, err)
			}
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a resource. Context links and progress rows cascade.
func (r *ResourceRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	return err
}
