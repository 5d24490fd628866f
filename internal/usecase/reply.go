package usecase

import (
	"time"

	"github.com/playforge/xobot/internal/entity"
)

// View selects which screen the transport should render.
type View int

const (
	ViewMenu View = iota
	ViewModePicker
	ViewBoard
	ViewTerminal
	ViewThemePicker
	ViewThemeApplied
	ViewStats
	ViewHistory
	ViewHelp
)

// BoardView is the renderable projection of a session: cells, glyphs,
// whose turn it is, and the projected countdowns for timed games.
// Countdowns are display-only and never below zero.
type BoardView struct {
	Cells      [entity.BoardSize][entity.BoardSize]entity.Mark
	Theme      entity.Theme
	Turn       entity.Mark
	MoveCount  int
	Timed      bool
	RemainingX time.Duration
	RemainingO time.Duration
}

// Reply is what a handled intent asks the transport to show. Exactly
// the fields relevant to the View are populated.
type Reply struct {
	View View

	Board   *BoardView
	Outcome entity.Outcome

	Stats   *entity.UserStats
	History []entity.GameRecord

	Themes      []entity.Theme
	ActiveTheme string
}
