package game

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/playforge/xobot/internal/apperror"
	"github.com/playforge/xobot/internal/entity"
)

// Session is the state machine for one live game in one chat. It is
// not safe for concurrent use; callers serialize access per chat.
//
// The session starts awaiting a move from X and stays mutable until an
// outcome is reached. A terminal outcome is absorbing: further moves
// and timeout checks are rejected, and only the registry can replace
// the session with a fresh one.
type Session struct {
	ID     string
	ChatID int64
	UserID int64
	Theme  entity.Theme

	board   entity.Board
	clock   *entity.Clock // nil in untimed games
	turn    entity.Mark
	outcome entity.Outcome
	now     func() time.Time
}

// NewSession - a fresh game awaiting X's first move. A zero turnBudget
// means an untimed game.
func NewSession(chatID, userID int64, theme entity.Theme, turnBudget time.Duration, now func() time.Time) *Session {
	session := &Session{
		ID:     uuid.NewString(),
		ChatID: chatID,
		UserID: userID,
		Theme:  theme,
		turn:   entity.MarkX,
		now:    now,
	}

	if turnBudget > 0 {
		session.clock = entity.NewClock(turnBudget, now())
	}

	return session
}

func (that *Session) Timed() bool {
	return that.clock != nil
}

func (that *Session) Turn() entity.Mark {
	return that.turn
}

func (that *Session) Outcome() entity.Outcome {
	return that.outcome
}

func (that *Session) Board() *entity.Board {
	return &that.board
}

// Remaining - projected time budget for rendering. Zero for untimed games.
func (that *Session) Remaining(player entity.Mark) time.Duration {
	if that.clock == nil {
		return 0
	}

	current := that.turn
	if that.outcome.Terminal() {
		current = entity.MarkEmpty // clocks froze at the terminal transition
	}

	return that.clock.Remaining(player, current, that.now())
}

// CheckTimeout - flips the session to a timeout loss if the current
// player's projected budget has run out. Evaluated before any queued
// move for the same turn, so an expired deadline beats an in-flight move.
func (that *Session) CheckTimeout() (entity.Outcome, bool) {
	if that.outcome.Terminal() || that.clock == nil {
		return that.outcome, false
	}

	if that.clock.Remaining(that.turn, that.turn, that.now()) > 0 {
		return entity.OutcomeNone, false
	}

	that.clock.Expire(that.turn)
	that.outcome = entity.TimeoutOutcome(that.turn)

	return that.outcome, true
}

// Move - one move attempt by the current player.
//
// In timed games the clock is charged exactly once, before the move is
// applied; a charge failure is a legitimate timeout transition, not an
// error. The turn boundary advances with the charge so a rejected
// attempt cannot bill the same interval twice.
func (that *Session) Move(row, col int) (entity.Outcome, error) {
	if that.outcome.Terminal() {
		return that.outcome, apperror.ErrGameFinished
	}

	now := that.now()

	if that.clock != nil {
		if err := that.clock.Charge(that.turn, now); err != nil {
			if errors.Is(err, apperror.ErrTimeExpired) {
				that.outcome = entity.TimeoutOutcome(that.turn)
				return that.outcome, nil
			}

			return entity.OutcomeNone, err
		}

		that.clock.OnTurnStart(now)
	}

	if err := that.board.ApplyMove(row, col, that.turn); err != nil {
		return entity.OutcomeNone, err
	}

	// winner before draw: the ninth move can still complete a line
	if winner := that.board.Winner(); winner != entity.MarkEmpty {
		that.outcome = entity.WinOutcome(winner)
		return that.outcome, nil
	}

	if that.board.IsDraw() {
		that.outcome = entity.OutcomeDraw
		return that.outcome, nil
	}

	that.turn = that.turn.Opponent()

	return entity.OutcomeNone, nil
}
