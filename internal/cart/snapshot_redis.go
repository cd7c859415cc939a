package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// snapshotTTL bounds how long an idle session keeps its cart. Every write
// refreshes it, so the slot survives reloads but not an abandoned session.
const snapshotTTL = 24 * time.Hour

// RedisSnapshotter stores each session's cart under its own key as a JSON
// array of lines.
type RedisSnapshotter struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotter(client *redis.Client) *RedisSnapshotter {
	return &RedisSnapshotter{client: client, ttl: snapshotTTL}
}

func (r *RedisSnapshotter) Save(ctx context.Context, sessionID string, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := r.client.Set(ctx, snapshotKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisSnapshotter) Load(ctx context.Context, sessionID string) ([]Line, error) {
	data, err := r.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return lines, nil
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
