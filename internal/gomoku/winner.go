package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

// WinLength is the number of consecutive marks that wins the game.
const WinLength = 5

// directions are scanned forward only; every cell is tried as an anchor,
// so a run is found from its first cell in reading order.
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// FindWinner - scans the board row by row and returns the first player with five in a row.
func FindWinner(board entity.Board) (entity.Cell, bool) {
	size := board.Size()

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			player := board.At(row, col)
			if player == entity.Empty {
				continue
			}

			for _, dir := range directions {
				if runLength(board, row, col, dir[0], dir[1], player) == WinLength {
					return player, true
				}
			}
		}
	}

	return entity.Empty, false
}

// runLength - counts marks of player starting at the anchor, capped at WinLength.
func runLength(board entity.Board, row, col, dRow, dCol int, player entity.Cell) int {
	count := 1

	for step := 1; step < WinLength; step++ {
		nextRow, nextCol := row+step*dRow, col+step*dCol
		if !board.InBounds(nextRow, nextCol) || board.At(nextRow, nextCol) != player {
			break
		}
		count++
	}

	return count
}
