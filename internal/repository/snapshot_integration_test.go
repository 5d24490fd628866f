package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playforge/xobot/internal/entity"
	"github.com/playforge/xobot/testing/suite"
)

func TestSnapshotRepository_Redis(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewSnapshotRepository(st.Storage)

	// Given: a recorded outcome and a theme choice
	snapshot := entity.NewSnapshot()
	userStats := &entity.UserStats{}
	userStats.Record(entity.ResultLoss, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	snapshot.Stats[200] = userStats
	snapshot.Themes[200] = "animals"

	// When: the snapshot is persisted to a real Redis and read back
	require.NoError(t, repo.Save(ctx, snapshot))
	loaded, err := repo.Load(ctx)

	// Then: the document round-trips
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Stats[200].Losses)
	assert.Equal(t, "animals", loaded.Themes[200])
}
