package presenter

import (
	"strconv"

	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

// HistoryEntry is one selectable position in the move list.
type HistoryEntry struct {
	Move  int    `json:"move"`
	Label string `json:"label"`
}

// View is the presentation form of a game state shared by every client.
type View struct {
	Board       [][]string     `json:"board"`
	Status      string         `json:"status"`
	NextPlayer  string         `json:"next_player,omitempty"`
	Winner      string         `json:"winner,omitempty"`
	CurrentMove int            `json:"current_move"`
	History     []HistoryEntry `json:"history"`
}

func NewView(state gomoku.State) *View {
	rows := state.Board.Rows()

	board := make([][]string, len(rows))
	for i, row := range rows {
		board[i] = make([]string, len(row))
		for j, cell := range row {
			board[i][j] = cell.String()
		}
	}

	history := make([]HistoryEntry, len(state.Moves))
	for i, move := range state.Moves {
		history[i] = HistoryEntry{Move: move, Label: MoveLabel(move)}
	}

	view := &View{
		Board:       board,
		Status:      StatusLine(state),
		CurrentMove: state.CurrentMove,
		History:     history,
	}

	if state.HasWinner() {
		view.Winner = state.Winner.String()
	} else {
		view.NextPlayer = state.NextPlayer.String()
	}

	return view
}

// StatusLine - the line shown above the board.
func StatusLine(state gomoku.State) string {
	if state.HasWinner() {
		return "Player " + state.Winner.String() + " wins!"
	}

	return "Next player: " + state.NextPlayer.String()
}

// MoveLabel - the caption of a history entry.
func MoveLabel(move int) string {
	if move == 0 {
		return "Go to game start"
	}

	return "Go to move #" + strconv.Itoa(move)
}
