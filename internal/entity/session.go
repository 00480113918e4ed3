package entity

import "time"

// Move is the cell written by one history transition.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Session is the stored form of one game: its move list and the displayed position.
type Session struct {
	ID          string    `json:"id"`
	BoardSize   int       `json:"board_size"`
	Moves       []Move    `json:"moves"`
	CurrentMove int       `json:"current_move"`
	UpdatedAt   time.Time `json:"updated_at"`
}
