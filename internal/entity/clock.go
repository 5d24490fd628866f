package entity

import (
	"time"

	"github.com/playforge/xobot/internal/apperror"
)

// Clock tracks the remaining time budget of each player in a timed game.
// A budget is decremented only while it is that player's turn, and only
// through Charge; Remaining is a read-only projection for rendering.
type Clock struct {
	remaining     map[Mark]time.Duration
	turnStartedAt time.Time
}

func NewClock(budget time.Duration, start time.Time) *Clock {
	return &Clock{
		remaining: map[Mark]time.Duration{
			MarkX: budget,
			MarkO: budget,
		},
		turnStartedAt: start,
	}
}

// OnTurnStart - records a new turn boundary.
func (that *Clock) OnTurnStart(now time.Time) {
	that.turnStartedAt = now
}

// Charge - subtracts the elapsed turn time from the player's budget.
// Returns ErrTimeExpired if the budget would reach zero; the stored
// budget never goes negative.
func (that *Clock) Charge(player Mark, now time.Time) error {
	elapsed := that.elapsedSince(now)

	if that.remaining[player] <= elapsed {
		that.remaining[player] = 0
		return apperror.ErrTimeExpired
	}

	that.remaining[player] -= elapsed

	return nil
}

// Expire - zeroes a player's budget once a timeout has been declared,
// so later renders show the clock the player actually lost on.
func (that *Clock) Expire(player Mark) {
	that.remaining[player] = 0
}

// Remaining - projects the player's budget at the given instant. The
// elapsed portion of the current turn is counted only for the player
// whose turn it is; the stored budget is not mutated.
func (that *Clock) Remaining(player, current Mark, now time.Time) time.Duration {
	left := that.remaining[player]

	if player == current {
		left -= that.elapsedSince(now)
	}

	if left < 0 {
		return 0
	}

	return left
}

// A backward clock jump is clamped to zero elapsed.
func (that *Clock) elapsedSince(now time.Time) time.Duration {
	elapsed := now.Sub(that.turnStartedAt)
	if elapsed < 0 {
		return 0
	}

	return elapsed
}
