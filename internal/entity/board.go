package entity

import (
	"fmt"

	"github.com/playforge/xobot/internal/apperror"
)

const BoardSize = 3

// Mark is both a player identity and the content of a board cell.
type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

// Board is a 3x3 grid. A cell is written at most once per game;
// moveCount always equals the number of non-empty cells.
type Board struct {
	cells     [BoardSize][BoardSize]Mark
	moveCount int
}

// ApplyMove - places a mark on an empty cell.
func (that *Board) ApplyMove(row, col int, mark Mark) error {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return fmt.Errorf("%w: %d,%d", apperror.ErrOutOfRange, row, col)
	}

	if that.cells[row][col] != MarkEmpty {
		return apperror.ErrCellOccupied
	}

	that.cells[row][col] = mark
	that.moveCount++

	return nil
}

func (that *Board) Cell(row, col int) Mark {
	return that.cells[row][col]
}

func (that *Board) Cells() [BoardSize][BoardSize]Mark {
	return that.cells
}

func (that *Board) MoveCount() int {
	return that.moveCount
}

// Winner - scans rows, then columns, then diagonals for three identical marks.
func (that *Board) Winner() Mark {
	for i := 0; i < BoardSize; i++ {
		if mark := that.cells[i][0]; mark != MarkEmpty && mark == that.cells[i][1] && mark == that.cells[i][2] {
			return mark
		}
	}

	for i := 0; i < BoardSize; i++ {
		if mark := that.cells[0][i]; mark != MarkEmpty && mark == that.cells[1][i] && mark == that.cells[2][i] {
			return mark
		}
	}

	if mark := that.cells[0][0]; mark != MarkEmpty && mark == that.cells[1][1] && mark == that.cells[2][2] {
		return mark
	}

	if mark := that.cells[0][2]; mark != MarkEmpty && mark == that.cells[1][1] && mark == that.cells[2][0] {
		return mark
	}

	return MarkEmpty
}

func (that *Board) IsFull() bool {
	return that.moveCount == BoardSize*BoardSize
}

func (that *Board) IsDraw() bool {
	return that.IsFull() && that.Winner() == MarkEmpty
}
