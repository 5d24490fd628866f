package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playforge/xobot/internal/apperror"
	"github.com/playforge/xobot/internal/entity"
	"github.com/playforge/xobot/internal/game"
)

const (
	testChatID = int64(100)
	testUserID = int64(200)
)

// fakeProfile is an in-memory stand-in for the profile service.
type fakeProfile struct {
	recorded []entity.Result
	stats    map[int64]*entity.UserStats
	themes   map[int64]string
}

func newFakeProfile() *fakeProfile {
	return &fakeProfile{
		stats:  make(map[int64]*entity.UserStats),
		themes: make(map[int64]string),
	}
}

func (that *fakeProfile) RecordOutcome(_ context.Context, userID int64, result entity.Result) *entity.UserStats {
	that.recorded = append(that.recorded, result)

	userStats, ok := that.stats[userID]
	if !ok {
		userStats = &entity.UserStats{}
		that.stats[userID] = userStats
	}
	userStats.Record(result, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	return userStats.Clone()
}

func (that *fakeProfile) Stats(userID int64) *entity.UserStats {
	if userStats, ok := that.stats[userID]; ok {
		return userStats.Clone()
	}
	return &entity.UserStats{}
}

func (that *fakeProfile) Theme(userID int64) entity.Theme {
	return entity.ThemeByID(that.themes[userID])
}

func (that *fakeProfile) ThemeID(userID int64) string {
	if id, ok := that.themes[userID]; ok {
		return id
	}
	return entity.DefaultThemeID
}

func (that *fakeProfile) SetTheme(_ context.Context, userID int64, themeID string) (entity.Theme, error) {
	if !entity.KnownTheme(themeID) {
		return entity.Theme{}, fmt.Errorf("%w: %s", apperror.ErrUnknownTheme, themeID)
	}
	that.themes[userID] = themeID
	return entity.ThemeByID(themeID), nil
}

type managerClock struct {
	current time.Time
}

func (that *managerClock) now() time.Time {
	return that.current
}

func newTestManager(t *testing.T) (*GameManager, *fakeProfile, *managerClock) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	profile := newFakeProfile()
	clock := &managerClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	manager := NewGameManager(logger, game.NewRegistry(), profile, 5*time.Second, clock.now)

	return manager, profile, clock
}

func handle(t *testing.T, manager *GameManager, intent Intent) *Reply {
	t.Helper()

	reply, err := manager.Handle(context.Background(), testChatID, testUserID, intent)
	require.NoError(t, err)
	require.NotNil(t, reply)

	return reply
}

func TestGameManager_StartGame(t *testing.T) {
	t.Run("A normal game begins awaiting X with no clock", func(t *testing.T) {
		manager, _, _ := newTestManager(t)

		reply := handle(t, manager, Intent{Kind: IntentStartNormal})

		assert.Equal(t, ViewBoard, reply.View)
		require.NotNil(t, reply.Board)
		assert.Equal(t, entity.MarkX, reply.Board.Turn)
		assert.False(t, reply.Board.Timed)
		assert.Zero(t, reply.Board.MoveCount)
	})

	t.Run("A timed game carries the configured budget", func(t *testing.T) {
		manager, _, _ := newTestManager(t)

		reply := handle(t, manager, Intent{Kind: IntentStartTimed})

		require.NotNil(t, reply.Board)
		assert.True(t, reply.Board.Timed)
		assert.Equal(t, 5*time.Second, reply.Board.RemainingX)
		assert.Equal(t, 5*time.Second, reply.Board.RemainingO)
	})

	t.Run("Starting twice abandons the first game with no stats (scenario E)", func(t *testing.T) {
		// Given: a game with moves on the board
		manager, profile, _ := newTestManager(t)
		handle(t, manager, Intent{Kind: IntentStartNormal})
		handle(t, manager, Intent{Kind: IntentMove, Row: 0, Col: 0})

		// When: a new game starts in the same chat
		reply := handle(t, manager, Intent{Kind: IntentStartNormal})

		// Then: a fresh board awaiting X, and nothing was recorded
		assert.Equal(t, entity.MarkX, reply.Board.Turn)
		assert.Zero(t, reply.Board.MoveCount)
		assert.Empty(t, profile.recorded)
	})

	t.Run("The board is rendered with the user's theme", func(t *testing.T) {
		manager, profile, _ := newTestManager(t)
		profile.themes[testUserID] = "space"

		reply := handle(t, manager, Intent{Kind: IntentStartNormal})

		assert.Equal(t, "space", reply.Board.Theme.ID)
	})
}

func TestGameManager_Move(t *testing.T) {
	t.Run("Rejects a move when no game exists", func(t *testing.T) {
		manager, _, _ := newTestManager(t)

		_, err := manager.Handle(context.Background(), testChatID, testUserID, Intent{Kind: IntentMove, Row: 0, Col: 0})

		require.ErrorIs(t, err, apperror.ErrNoActiveGame)
	})

	t.Run("An X win records a win and keeps the final board addressable", func(t *testing.T) {
		// Given: a game one move away from an X diagonal
		manager, profile, _ := newTestManager(t)
		handle(t, manager, Intent{Kind: IntentStartNormal})
		for _, coords := range [][2]int{{0, 0}, {0, 1}, {1, 1}, {1, 0}} {
			handle(t, manager, Intent{Kind: IntentMove, Row: coords[0], Col: coords[1]})
		}

		// When: X completes the line
		reply := handle(t, manager, Intent{Kind: IntentMove, Row: 2, Col: 2})

		// Then: terminal win, a recorded win, and a stale move is rejected
		assert.Equal(t, ViewTerminal, reply.View)
		assert.Equal(t, entity.OutcomeWinX, reply.Outcome)
		assert.Equal(t, []entity.Result{entity.ResultWin}, profile.recorded)

		_, err := manager.Handle(context.Background(), testChatID, testUserID, Intent{Kind: IntentMove, Row: 2, Col: 0})
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Len(t, profile.recorded, 1)
	})

	t.Run("An O win records a loss for the owning user", func(t *testing.T) {
		// Given: X squanders the opening while O builds a row
		manager, profile, _ := newTestManager(t)
		handle(t, manager, Intent{Kind: IntentStartNormal})
		for _, coords := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 2}} {
			handle(t, manager, Intent{Kind: IntentMove, Row: coords[0], Col: coords[1]})
		}

		// When: O completes the middle row
		reply := handle(t, manager, Intent{Kind: IntentMove, Row: 1, Col: 2})

		// Then: a loss is recorded
		assert.Equal(t, entity.OutcomeWinO, reply.Outcome)
		assert.Equal(t, []entity.Result{entity.ResultLoss}, profile.recorded)
	})

	t.Run("An occupied cell is rejected with no stats change", func(t *testing.T) {
		// Given: X on the center
		manager, profile, _ := newTestManager(t)
		handle(t, manager, Intent{Kind: IntentStartNormal})
		handle(t, manager, Intent{Kind: IntentMove, Row: 1, Col: 1})

		// When: O targets the same cell
		_, err := manager.Handle(context.Background(), testChatID, testUserID, Intent{Kind: IntentMove, Row: 1, Col: 1})

		// Then: scenario D — rejected, nothing recorded
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Empty(t, profile.recorded)
	})

	t.Run("A draw records a draw", func(t *testing.T) {
		manager, profile, _ := newTestManager(t)
		handle(t, manager, Intent{Kind: IntentStartNormal})
		for _, coords := range [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}} {
			handle(t, manager, Intent{Kind: IntentMove, Row: coords[0], Col: coords[1]})
		}

		reply := handle(t, manager, Intent{Kind: IntentMove, Row: 2, Col: 2})

		assert.Equal(t, entity.OutcomeDraw, reply.Outcome)
		assert.Equal(t, []entity.Result{entity.ResultDraw}, profile.recorded)
	})
}

func TestGameManager_Timeout(t *testing.T) {
	t.Run("An expired clock beats the incoming move (scenario C)", func(t *testing.T) {
		// Given: a timed game with a 5s budget and 6 idle seconds
		manager, profile, clock := newTestManager(t)
		handle(t, manager, Intent{Kind: IntentStartTimed})
		clock.current = clock.current.Add(6 * time.Second)

		// When: X's move finally arrives
		reply := handle(t, manager, Intent{Kind: IntentMove, Row: 0, Col: 0})

		// Then: timeout loss for X, loss recorded, the mark never landed
		assert.Equal(t, ViewTerminal, reply.View)
		assert.Equal(t, entity.OutcomeTimeoutX, reply.Outcome)
		assert.Equal(t, []entity.Result{entity.ResultLoss}, profile.recorded)
		assert.Zero(t, reply.Board.MoveCount)
		assert.Equal(t, time.Duration(0), reply.Board.RemainingX)
	})

	t.Run("Within the budget the game just continues", func(t *testing.T) {
		manager, profile, clock := newTestManager(t)
		handle(t, manager, Intent{Kind: IntentStartTimed})
		clock.current = clock.current.Add(2 * time.Second)

		reply := handle(t, manager, Intent{Kind: IntentMove, Row: 0, Col: 0})

		assert.Equal(t, ViewBoard, reply.View)
		assert.Equal(t, entity.MarkO, reply.Board.Turn)
		assert.Equal(t, 3*time.Second, reply.Board.RemainingX)
		assert.Empty(t, profile.recorded)
	})
}

func TestGameManager_Restart(t *testing.T) {
	// Given: a finished game still on display
	manager, profile, _ := newTestManager(t)
	handle(t, manager, Intent{Kind: IntentStartNormal})
	for _, coords := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		handle(t, manager, Intent{Kind: IntentMove, Row: coords[0], Col: coords[1]})
	}
	require.Len(t, profile.recorded, 1)

	// When: the restart intent arrives
	reply := handle(t, manager, Intent{Kind: IntentRestart})

	// Then: the mode picker is shown, the session is gone, no extra stats
	assert.Equal(t, ViewModePicker, reply.View)
	assert.Len(t, profile.recorded, 1)

	_, err := manager.Handle(context.Background(), testChatID, testUserID, Intent{Kind: IntentMove, Row: 2, Col: 2})
	require.ErrorIs(t, err, apperror.ErrNoActiveGame)
}

func TestGameManager_Themes(t *testing.T) {
	t.Run("The picker lists the catalog with the active theme", func(t *testing.T) {
		manager, profile, _ := newTestManager(t)
		profile.themes[testUserID] = "hearts"

		reply := handle(t, manager, Intent{Kind: IntentChangeTheme})

		assert.Equal(t, ViewThemePicker, reply.View)
		assert.Equal(t, entity.Themes, reply.Themes)
		assert.Equal(t, "hearts", reply.ActiveTheme)
	})

	t.Run("Applying a theme stores it", func(t *testing.T) {
		manager, profile, _ := newTestManager(t)

		reply := handle(t, manager, Intent{Kind: IntentApplyTheme, Theme: "fruits"})

		assert.Equal(t, ViewThemeApplied, reply.View)
		assert.Equal(t, "fruits", reply.ActiveTheme)
		assert.Equal(t, "fruits", profile.themes[testUserID])
	})

	t.Run("An unknown theme is rejected", func(t *testing.T) {
		manager, _, _ := newTestManager(t)

		_, err := manager.Handle(context.Background(), testChatID, testUserID, Intent{Kind: IntentApplyTheme, Theme: "neon"})

		require.ErrorIs(t, err, apperror.ErrUnknownTheme)
	})
}

func TestGameManager_InfoViews(t *testing.T) {
	manager, profile, _ := newTestManager(t)
	profile.RecordOutcome(context.Background(), testUserID, entity.ResultWin)

	t.Run("Stats", func(t *testing.T) {
		reply := handle(t, manager, Intent{Kind: IntentShowStats})

		assert.Equal(t, ViewStats, reply.View)
		require.NotNil(t, reply.Stats)
		assert.Equal(t, 1, reply.Stats.Wins)
	})

	t.Run("History", func(t *testing.T) {
		reply := handle(t, manager, Intent{Kind: IntentShowHistory})

		assert.Equal(t, ViewHistory, reply.View)
		require.Len(t, reply.History, 1)
		assert.Equal(t, entity.ResultWin, reply.History[0].Result)
	})

	t.Run("Help and Back", func(t *testing.T) {
		assert.Equal(t, ViewHelp, handle(t, manager, Intent{Kind: IntentShowHelp}).View)
		assert.Equal(t, ViewMenu, handle(t, manager, Intent{Kind: IntentBack}).View)
	})
}

func TestGameManager_UnknownIntent(t *testing.T) {
	manager, _, _ := newTestManager(t)

	_, err := manager.Handle(context.Background(), testChatID, testUserID, Intent{Kind: IntentUnknown})

	require.ErrorIs(t, err, apperror.ErrOutOfRange)
}
