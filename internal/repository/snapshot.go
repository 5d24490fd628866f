package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/playforge/xobot/internal/entity"
)

const snapshotKey = "xobot:data"

// SnapshotRepository persists the whole {stats, themes} document as a
// single JSON value, matching the one-file-one-write model the bot's
// data has always had. Load on a fresh store yields an empty snapshot,
// never an error.
type SnapshotRepository interface {
	Load(ctx context.Context) (*entity.Snapshot, error)
	Save(ctx context.Context, snapshot *entity.Snapshot) error
}

type dbSnapshot struct {
	client *redis.Client
}

func NewSnapshotRepository(client *redis.Client) SnapshotRepository {
	return &dbSnapshot{
		client: client,
	}
}

func (that *dbSnapshot) Load(ctx context.Context) (*entity.Snapshot, error) {
	response, err := that.client.Get(ctx, snapshotKey).Result()

	if errors.Is(err, redis.Nil) {
		return entity.NewSnapshot(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	snapshot := entity.NewSnapshot()
	if err = json.Unmarshal([]byte(response), snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	if snapshot.Stats == nil {
		snapshot.Stats = make(map[int64]*entity.UserStats)
	}
	if snapshot.Themes == nil {
		snapshot.Themes = make(map[int64]string)
	}

	return snapshot, nil
}

func (that *dbSnapshot) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.client.Set(ctx, snapshotKey, snapshotJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}
