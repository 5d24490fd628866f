package entity

// Outcome is the terminal state of a session. OutcomeNone means the
// game is still awaiting a move.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWinX
	OutcomeWinO
	OutcomeDraw
	OutcomeTimeoutX // X ran out of time
	OutcomeTimeoutO // O ran out of time
)

// Result is what a finished game means for the user who owns the chat.
// The owning user plays X; the stored value is part of the persisted
// history records.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

func WinOutcome(mark Mark) Outcome {
	if mark == MarkO {
		return OutcomeWinO
	}
	return OutcomeWinX
}

func TimeoutOutcome(mark Mark) Outcome {
	if mark == MarkO {
		return OutcomeTimeoutO
	}
	return OutcomeTimeoutX
}

func (that Outcome) Terminal() bool {
	return that != OutcomeNone
}

// Winner - the mark that took the game, if any. A timeout hands the
// win to the opponent of the player whose clock ran out.
func (that Outcome) Winner() Mark {
	switch that {
	case OutcomeWinX:
		return MarkX
	case OutcomeWinO:
		return MarkO
	case OutcomeTimeoutX:
		return MarkO
	case OutcomeTimeoutO:
		return MarkX
	default:
		return MarkEmpty
	}
}

func (that Outcome) IsDraw() bool {
	return that == OutcomeDraw
}

func (that Outcome) IsTimeout() bool {
	return that == OutcomeTimeoutX || that == OutcomeTimeoutO
}

// Result - maps the outcome to the counter recorded for the owning
// user: an X win is a win, an O win is a loss, and any timeout is a
// loss regardless of whose clock ran out.
func (that Outcome) Result() Result {
	switch that {
	case OutcomeWinX:
		return ResultWin
	case OutcomeDraw:
		return ResultDraw
	default:
		return ResultLoss
	}
}
