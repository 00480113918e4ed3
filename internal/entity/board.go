package entity

import "encoding/json"

const DefaultBoardSize = 15

// Board is an immutable square grid of cells. Every change produces a new Board.
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size int) Board {
	if size < 0 {
		size = 0
	}

	return Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

func (that Board) Size() int {
	return that.size
}

func (that Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// At - returns the cell at (row, col), Empty when outside the board.
func (that Board) At(row, col int) Cell {
	if !that.InBounds(row, col) {
		return Empty
	}

	return that.cells[row*that.size+col]
}

// With - returns a copy of the board with (row, col) set to cell.
// The receiver is left untouched; out of range coordinates return an unchanged copy.
func (that Board) With(row, col int, cell Cell) Board {
	next := Board{
		size:  that.size,
		cells: make([]Cell, len(that.cells)),
	}
	copy(next.cells, that.cells)

	if that.InBounds(row, col) {
		next.cells[row*that.size+col] = cell
	}

	return next
}

func (that Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == Empty {
			return false
		}
	}

	return true
}

func (that Board) Equal(other Board) bool {
	if that.size != other.size {
		return false
	}

	for i := range that.cells {
		if that.cells[i] != other.cells[i] {
			return false
		}
	}

	return true
}

// Rows - returns a fresh row-major copy of the board.
func (that Board) Rows() [][]Cell {
	rows := make([][]Cell, that.size)
	for row := range rows {
		rows[row] = make([]Cell, that.size)
		copy(rows[row], that.cells[row*that.size:(row+1)*that.size])
	}

	return rows
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Rows())
}
