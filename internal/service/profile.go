package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/playforge/xobot/internal/apperror"
	"github.com/playforge/xobot/internal/entity"
)

type snapshotRepo interface {
	Load(ctx context.Context) (*entity.Snapshot, error)
	Save(ctx context.Context, snapshot *entity.Snapshot) error
}

// ProfileService owns every user's statistics and theme choice. The
// in-memory maps are authoritative for the life of the process; each
// mutation rewrites the persisted snapshot, and a failed save is
// logged without rolling the mutation back.
type ProfileService struct {
	logger *slog.Logger
	repo   snapshotRepo
	now    func() time.Time

	mu     sync.Mutex
	stats  map[int64]*entity.UserStats
	themes map[int64]string
}

// NewProfileService - loads the persisted snapshot and serves from memory.
func NewProfileService(ctx context.Context, logger *slog.Logger, repo snapshotRepo, now func() time.Time) (*ProfileService, error) {
	snapshot, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return &ProfileService{
		logger: logger.With("component", "profile"),
		repo:   repo,
		now:    now,
		stats:  snapshot.Stats,
		themes: snapshot.Themes,
	}, nil
}

// RecordOutcome - applies one finished game to the user's counters and
// history, persists the store, and returns the updated snapshot.
func (that *ProfileService) RecordOutcome(ctx context.Context, userID int64, result entity.Result) *entity.UserStats {
	that.mu.Lock()
	defer that.mu.Unlock()

	userStats, ok := that.stats[userID]
	if !ok {
		userStats = &entity.UserStats{}
		that.stats[userID] = userStats
	}

	userStats.Record(result, that.now())
	that.persistLocked(ctx)

	return userStats.Clone()
}

// Stats - a read-only snapshot; a user with no record gets zeroes and
// nothing is written.
func (that *ProfileService) Stats(userID int64) *entity.UserStats {
	that.mu.Lock()
	defer that.mu.Unlock()

	userStats, ok := that.stats[userID]
	if !ok {
		return &entity.UserStats{}
	}

	return userStats.Clone()
}

func (that *ProfileService) WinRate(userID int64) float64 {
	return that.Stats(userID).WinRate()
}

func (that *ProfileService) Theme(userID int64) entity.Theme {
	that.mu.Lock()
	defer that.mu.Unlock()

	return entity.ThemeByID(that.themes[userID])
}

func (that *ProfileService) ThemeID(userID int64) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	if id, ok := that.themes[userID]; ok {
		return id
	}

	return entity.DefaultThemeID
}

// SetTheme - records the user's theme choice and persists the store.
func (that *ProfileService) SetTheme(ctx context.Context, userID int64, themeID string) (entity.Theme, error) {
	if !entity.KnownTheme(themeID) {
		return entity.Theme{}, fmt.Errorf("%w: %s", apperror.ErrUnknownTheme, themeID)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.themes[userID] = themeID
	that.persistLocked(ctx)

	return entity.ThemeByID(themeID), nil
}

func (that *ProfileService) persistLocked(ctx context.Context) {
	snapshot := &entity.Snapshot{
		Stats:  that.stats,
		Themes: that.themes,
	}

	if err := that.repo.Save(ctx, snapshot); err != nil {
		that.logger.Error("failed to save snapshot, in-memory state stays authoritative", "error", err)
	}
}
