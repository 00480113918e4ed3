package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	// When: creating a default sized board
	board := NewBoard(DefaultBoardSize)

	// Then: it is 15x15 and every cell is empty
	require.Equal(t, 15, board.Size())
	for row := 0; row < board.Size(); row++ {
		for col := 0; col < board.Size(); col++ {
			assert.Equal(t, Empty, board.At(row, col))
		}
	}
}

func TestBoard_With(t *testing.T) {
	t.Run("Returns a new board and keeps the original untouched", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard(5)

		// When: placing X at (2, 3)
		next := board.With(2, 3, PlayerX)

		// Then: only the new board holds the mark
		assert.Equal(t, PlayerX, next.At(2, 3))
		assert.Equal(t, Empty, board.At(2, 3))
		assert.False(t, board.Equal(next))
	})

	t.Run("Out of range coordinates leave the copy unchanged", func(t *testing.T) {
		// Given: a board with one mark
		board := NewBoard(5).With(0, 0, PlayerO)

		// When: writing outside the board
		next := board.With(5, 0, PlayerX)

		// Then: the copy equals the source
		assert.True(t, board.Equal(next))
	})
}

func TestBoard_At(t *testing.T) {
	// Given: a board with a mark in the corner
	board := NewBoard(3).With(2, 2, PlayerO)

	// Then: lookups outside the board report Empty
	assert.Equal(t, PlayerO, board.At(2, 2))
	assert.Equal(t, Empty, board.At(-1, 0))
	assert.Equal(t, Empty, board.At(0, 3))
}

func TestBoard_IsFull(t *testing.T) {
	// Given: a 2x2 board filled one cell at a time
	board := NewBoard(2)
	assert.False(t, board.IsFull())

	board = board.With(0, 0, PlayerX).With(0, 1, PlayerO).With(1, 0, PlayerX)
	assert.False(t, board.IsFull())

	// When: the last cell is taken
	board = board.With(1, 1, PlayerO)

	// Then: the board is full
	assert.True(t, board.IsFull())
}

func TestBoard_Rows(t *testing.T) {
	// Given: a board with one mark
	board := NewBoard(2).With(1, 0, PlayerX)

	// When: the rows are modified by the caller
	rows := board.Rows()
	rows[0][0] = PlayerO

	// Then: the board itself does not change
	assert.Equal(t, [][]Cell{{PlayerO, Empty}, {PlayerX, Empty}}, rows)
	assert.Equal(t, Empty, board.At(0, 0))
}

func TestBoard_MarshalJSON(t *testing.T) {
	// Given: a small board
	board := NewBoard(2).With(0, 1, PlayerX).With(1, 1, PlayerO)

	// When: encoding it
	data, err := json.Marshal(board)
	require.NoError(t, err)

	// Then: rows of marks are produced
	assert.JSONEq(t, `[["","X"],["","O"]]`, string(data))
}

func TestCell_Text(t *testing.T) {
	t.Run("Round trips every mark", func(t *testing.T) {
		for _, cell := range []Cell{Empty, PlayerX, PlayerO} {
			text, err := cell.MarshalText()
			require.NoError(t, err)

			var decoded Cell
			require.NoError(t, decoded.UnmarshalText(text))
			assert.Equal(t, cell, decoded)
		}
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		var decoded Cell
		err := decoded.UnmarshalText([]byte("Z"))

		assert.ErrorIs(t, err, ErrUnknownCell)
	})

	t.Run("Opponent swaps players", func(t *testing.T) {
		assert.Equal(t, PlayerO, PlayerX.Opponent())
		assert.Equal(t, PlayerX, PlayerO.Opponent())
		assert.Equal(t, Empty, Empty.Opponent())
	})
}
