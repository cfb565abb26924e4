package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
)

// NodeRepository handles knowledge tree data access.
type NodeRepository struct {
	pool *pgxpool.Pool
}

// NewNodeRepository creates a new NodeRepository.
func NewNodeRepository(pool *pgxpool.Pool) *NodeRepository {
	return &NodeRepository{pool: pool}
}

// ListAll retrieves every node ordered for tree assembly. When activeOnly is
// set, inactive nodes (and therefore their subtrees) are excluded.
func (r *NodeRepository) ListAll(ctx context.Context, activeOnly bool) ([]model.KnowledgeNode, error) {
	query := `SELECT id, name, node_type, parent_id, sort_order, COALESCE(description, ''), COALESCE(thumbnail_url, ''), is_active
	          FROM knowledge_nodes`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []model.KnowledgeNode
	for rows.Next() {
		var n model.KnowledgeNode
		if err := rows.Scan(&n.ID, &n.Name, &n.NodeType, &n.ParentID, &n.SortOrder, &n.Description, &n.ThumbnailURL, &n.IsActive); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// GetByID retrieves a single node.
func (r *NodeRepository) GetByID(ctx context.Context, id int) (*model.KnowledgeNode, error) {
	n := &model.KnowledgeNode{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, node_type, parent_id, sort_order, COALESCE(description, ''), COALESCE(thumbnail_url, ''), is_active
		 FROM knowledge_nodes WHERE id = $1`, id,
	).Scan(&n.ID, &n.Name, &n.NodeType, &n.ParentID, &n.SortOrder, &n.Description, &n.ThumbnailURL, &n.IsActive)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create inserts a new node.
func (r *NodeRepository) Create(ctx context.Context, n *model.KnowledgeNode) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO knowledge_nodes (name, node_type, parent_id, sort_order, description, thumbnail_url, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		n.Name, n.NodeType, n.ParentID, n.SortOrder, n.Description, n.ThumbnailURL, n.IsActive,
	).Scan(&n.ID)
}

// Update rewrites a node row.
func (r *NodeRepository) Update(ctx context.Context, n *model.KnowledgeNode) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE knowledge_nodes
		 SET name = $2, node_type = $3, parent_id = $4, sort_order = $5,
		     description = $6, thumbnail_url = $7, is_active = $8
		 WHERE id = $1`,
		n.ID, n.Name, n.NodeType, n.ParentID, n.SortOrder, n.Description, n.ThumbnailURL, n.IsActive,
	)
	return err
}

// Delete removes a node and cascades to its subtree and resources.
func (r *NodeRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM knowledge_nodes WHERE id = $1`, id)
	return err
}
