package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qubitgyan/qubitgyan-backend/internal/config"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// ProgressNotifier pushes completion events somewhere downstream. The
// submission path treats it as best-effort.
type ProgressNotifier interface {
	NotifyCompleted(ctx context.Context, userID, resourceID int) error
}

// RedisProgressNotifier queues completion events for the progress worker.
type RedisProgressNotifier struct {
	rdb *redis.Client
}

// NewRedisProgressNotifier creates a new RedisProgressNotifier.
func NewRedisProgressNotifier(rdb *redis.Client) *RedisProgressNotifier {
	return &RedisProgressNotifier{rdb: rdb}
}

// NotifyCompleted pushes one completion event onto the progress queue.
func (n *RedisProgressNotifier) NotifyCompleted(ctx context.Context, userID, resourceID int) error {
	payload, err := json.Marshal(model.ProgressMessage{UserID: userID, ResourceID: resourceID})
	if err != nil {
		return fmt.Errorf("marshal progress message: %w", err)
	}
	return n.rdb.RPush(ctx, config.WorkerKey.ProgressQueue, payload).Err()
}
