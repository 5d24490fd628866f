package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playforge/xobot/internal/entity"
)

func newTestRepository(t *testing.T) SnapshotRepository {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewSnapshotRepository(client)
}

func TestSnapshotRepository_Load(t *testing.T) {
	t.Run("A fresh store loads as an empty snapshot", func(t *testing.T) {
		// Given: nothing persisted yet
		repo := newTestRepository(t)

		// When: the snapshot is loaded
		snapshot, err := repo.Load(context.Background())

		// Then: empty, usable maps instead of an error
		require.NoError(t, err)
		assert.Empty(t, snapshot.Stats)
		assert.Empty(t, snapshot.Themes)
		assert.NotNil(t, snapshot.Stats)
		assert.NotNil(t, snapshot.Themes)
	})
}

func TestSnapshotRepository_SaveAndLoad(t *testing.T) {
	t.Run("A saved snapshot round-trips", func(t *testing.T) {
		// Given: a snapshot with stats, history, and a theme
		repo := newTestRepository(t)

		saved := entity.NewSnapshot()
		userStats := &entity.UserStats{}
		userStats.Record(entity.ResultWin, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		userStats.Record(entity.ResultDraw, time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC))
		saved.Stats[200] = userStats
		saved.Themes[200] = "space"

		// When: it is saved and loaded back
		require.NoError(t, repo.Save(context.Background(), saved))
		loaded, err := repo.Load(context.Background())

		// Then: everything survives, history order included
		require.NoError(t, err)
		require.Contains(t, loaded.Stats, int64(200))
		assert.Equal(t, 1, loaded.Stats[200].Wins)
		assert.Equal(t, 1, loaded.Stats[200].Draws)
		assert.Equal(t, 2, loaded.Stats[200].TotalGames)
		require.Len(t, loaded.Stats[200].History, 2)
		assert.Equal(t, entity.ResultDraw, loaded.Stats[200].History[0].Result)
		assert.Equal(t, "space", loaded.Themes[200])
	})

	t.Run("Saving again overwrites the whole document", func(t *testing.T) {
		// Given: a persisted snapshot for one user
		repo := newTestRepository(t)

		first := entity.NewSnapshot()
		first.Themes[200] = "hearts"
		require.NoError(t, repo.Save(context.Background(), first))

		// When: a snapshot without that user is saved
		second := entity.NewSnapshot()
		second.Themes[201] = "space"
		require.NoError(t, repo.Save(context.Background(), second))

		// Then: only the second document remains
		loaded, err := repo.Load(context.Background())
		require.NoError(t, err)
		assert.NotContains(t, loaded.Themes, int64(200))
		assert.Equal(t, "space", loaded.Themes[201])
	})
}
