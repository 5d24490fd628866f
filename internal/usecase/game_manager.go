package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/playforge/xobot/internal/apperror"
	"github.com/playforge/xobot/internal/entity"
	"github.com/playforge/xobot/internal/game"
)

type profileService interface {
	RecordOutcome(ctx context.Context, userID int64, result entity.Result) *entity.UserStats
	Stats(userID int64) *entity.UserStats
	Theme(userID int64) entity.Theme
	ThemeID(userID int64) string
	SetTheme(ctx context.Context, userID int64, themeID string) (entity.Theme, error)
}

// GameManager resolves typed intents against the session registry and
// the profile store. Events for the same chat are applied one at a
// time; different chats proceed in parallel.
type GameManager struct {
	logger     *slog.Logger
	registry   *game.Registry
	profile    profileService
	turnBudget time.Duration
	now        func() time.Time

	mu        sync.Mutex
	chatLocks map[int64]*sync.Mutex
}

func NewGameManager(logger *slog.Logger, registry *game.Registry, profile profileService, turnBudget time.Duration, now func() time.Time) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game_manager"),
		registry:   registry,
		profile:    profile,
		turnBudget: turnBudget,
		now:        now,

		chatLocks: make(map[int64]*sync.Mutex),
	}
}

// Handle - applies one inbound event for a chat and returns what to render.
func (that *GameManager) Handle(ctx context.Context, chatID, userID int64, intent Intent) (*Reply, error) {
	lock := that.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	switch intent.Kind {
	case IntentStartNormal:
		return that.startGame(chatID, userID, false), nil
	case IntentStartTimed:
		return that.startGame(chatID, userID, true), nil
	case IntentMove:
		return that.makeMove(ctx, chatID, intent.Row, intent.Col)
	case IntentRestart:
		// abandoning a game records nothing for either side
		that.registry.Remove(chatID)
		return &Reply{View: ViewModePicker}, nil
	case IntentChangeTheme:
		return &Reply{View: ViewThemePicker, Themes: entity.Themes, ActiveTheme: that.profile.ThemeID(userID)}, nil
	case IntentApplyTheme:
		return that.applyTheme(ctx, userID, intent.Theme)
	case IntentShowStats:
		return &Reply{View: ViewStats, Stats: that.profile.Stats(userID)}, nil
	case IntentShowHistory:
		return &Reply{View: ViewHistory, History: that.profile.Stats(userID).History}, nil
	case IntentShowHelp:
		return &Reply{View: ViewHelp}, nil
	case IntentBack:
		return &Reply{View: ViewMenu}, nil
	default:
		return nil, fmt.Errorf("%w: unknown intent", apperror.ErrOutOfRange)
	}
}

func (that *GameManager) startGame(chatID, userID int64, timed bool) *Reply {
	budget := time.Duration(0)
	if timed {
		budget = that.turnBudget
	}

	session := that.registry.Start(chatID, userID, that.profile.Theme(userID), budget, that.now)

	that.logger.Info("game started", "chat_id", chatID, "session_id", session.ID, "timed", timed)

	return &Reply{View: ViewBoard, Board: that.boardView(session)}
}

func (that *GameManager) makeMove(ctx context.Context, chatID int64, row, col int) (*Reply, error) {
	session, ok := that.registry.Get(chatID)
	if !ok {
		return nil, apperror.ErrNoActiveGame
	}

	// an expired deadline beats a move that was already in flight
	if outcome, expired := session.CheckTimeout(); expired {
		return that.finishGame(ctx, session, outcome), nil
	}

	outcome, err := session.Move(row, col)
	if err != nil {
		return nil, err
	}

	if outcome.Terminal() {
		return that.finishGame(ctx, session, outcome), nil
	}

	return &Reply{View: ViewBoard, Board: that.boardView(session)}, nil
}

// finishGame - records the outcome before the result is acknowledged.
// The session stays addressable for the final render; the restart
// intent retires it.
func (that *GameManager) finishGame(ctx context.Context, session *game.Session, outcome entity.Outcome) *Reply {
	stats := that.profile.RecordOutcome(ctx, session.UserID, outcome.Result())

	that.logger.Info("game finished",
		"chat_id", session.ChatID,
		"session_id", session.ID,
		"result", outcome.Result(),
		"total_games", stats.TotalGames,
	)

	return &Reply{
		View:    ViewTerminal,
		Outcome: outcome,
		Board:   that.boardView(session),
	}
}

func (that *GameManager) applyTheme(ctx context.Context, userID int64, themeID string) (*Reply, error) {
	theme, err := that.profile.SetTheme(ctx, userID, themeID)
	if err != nil {
		return nil, fmt.Errorf("failed to set theme: %w", err)
	}

	return &Reply{View: ViewThemeApplied, ActiveTheme: theme.ID, Themes: entity.Themes}, nil
}

func (that *GameManager) boardView(session *game.Session) *BoardView {
	return &BoardView{
		Cells:      session.Board().Cells(),
		Theme:      session.Theme,
		Turn:       session.Turn(),
		MoveCount:  session.Board().MoveCount(),
		Timed:      session.Timed(),
		RemainingX: session.Remaining(entity.MarkX),
		RemainingO: session.Remaining(entity.MarkO),
	}
}

func (that *GameManager) chatLock(chatID int64) *sync.Mutex {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock, ok := that.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		that.chatLocks[chatID] = lock
	}

	return lock
}
