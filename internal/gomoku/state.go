package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
)

// State is a read-only view of the displayed position.
type State struct {
	Board       entity.Board `json:"board"`
	CurrentMove int          `json:"current_move"`
	NextPlayer  entity.Cell  `json:"next_player"`
	Winner      entity.Cell  `json:"winner"`
	Status      Status       `json:"status"`
	Moves       []int        `json:"moves"`
}

func (that State) HasWinner() bool {
	return that.Status == StatusWon
}

func (that State) IsFinished() bool {
	return that.Status == StatusWon
}

// playerForMove - X moves on even positions, O on odd ones.
func playerForMove(move int) entity.Cell {
	if move%2 == 0 {
		return entity.PlayerX
	}

	return entity.PlayerO
}
