package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// History owns the snapshots of one game and the position currently displayed.
// It is not safe for concurrent use; callers serialize access per game.
type History struct {
	snapshots []entity.Board
	moves     []entity.Move
	current   int
}

func NewHistory(size int) *History {
	return &History{
		snapshots: []entity.Board{entity.NewBoard(size)},
	}
}

// Replay - rebuilds a history by playing moves in order, then jumps to current.
func Replay(size int, moves []entity.Move, current int) (*History, error) {
	history := NewHistory(size)

	for i, move := range moves {
		if err := history.PlayMove(move.Row, move.Col); err != nil {
			return nil, fmt.Errorf("failed to replay move %d: %w", i+1, err)
		}
	}

	if err := history.JumpTo(current); err != nil {
		return nil, fmt.Errorf("failed to restore position: %w", err)
	}

	return history, nil
}

// PlayMove - places the mark of the player to move on (row, col) of the displayed board.
// Snapshots after the displayed one are discarded. A rejected move changes nothing.
func (that *History) PlayMove(row, col int) error {
	board := that.snapshots[that.current]

	if err := validateMove(board, row, col); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrMoveRejected, err)
	}

	next := board.With(row, col, playerForMove(that.current))

	that.snapshots = append(that.snapshots[:that.current+1:that.current+1], next)
	that.moves = append(that.moves[:that.current:that.current], entity.Move{Row: row, Col: col})
	that.current = len(that.snapshots) - 1

	return nil
}

// JumpTo - displays the snapshot at move without altering the history.
func (that *History) JumpTo(move int) error {
	if move < 0 || move >= len(that.snapshots) {
		return fmt.Errorf("%w: %d not in [0, %d)", apperror.ErrOutOfRange, move, len(that.snapshots))
	}

	that.current = move

	return nil
}

// CurrentState - derives the displayed board, turn, winner and navigable moves.
func (that *History) CurrentState() State {
	board := that.snapshots[that.current]

	state := State{
		Board:       board,
		CurrentMove: that.current,
		NextPlayer:  playerForMove(that.current),
		Status:      StatusInProgress,
		Moves:       make([]int, len(that.snapshots)),
	}

	for i := range state.Moves {
		state.Moves[i] = i
	}

	if winner, ok := FindWinner(board); ok {
		state.Winner = winner
		state.Status = StatusWon
	}

	return state
}

func (that *History) Len() int {
	return len(that.snapshots)
}

func (that *History) CurrentMove() int {
	return that.current
}

func (that *History) BoardSize() int {
	return that.snapshots[0].Size()
}

// Moves - returns the recorded moves, including those after the displayed position.
func (that *History) Moves() []entity.Move {
	moves := make([]entity.Move, len(that.moves))
	copy(moves, that.moves)

	return moves
}

// validateMove - checks that the move lands on an empty cell of an unfinished board.
func validateMove(board entity.Board, row, col int) error {
	if !board.InBounds(row, col) {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, row, col)
	}

	if _, ok := FindWinner(board); ok {
		return apperror.ErrGameFinished
	}

	if board.At(row, col) != entity.Empty {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, row, col)
	}

	return nil
}
