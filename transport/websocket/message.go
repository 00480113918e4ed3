package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gomoku-backend/internal/presenter"
)

const (
	actionSessionNew    = "session:new"
	actionSessionResume = "session:resume"
	actionSessionEnd    = "session:end"
	actionGameMove      = "game:move"
	actionGameJump      = "game:jump"
	actionGameState     = "game:state"
	actionError         = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the arguments of every action; unused fields are omitted.
type RequestPayload struct {
	SessionID string `json:"session_id,omitempty"`
	Row       *int   `json:"row,omitempty"`
	Col       *int   `json:"col,omitempty"`
	Move      *int   `json:"move,omitempty"`
}

type ResponsePayload struct {
	SessionID string          `json:"session_id,omitempty"`
	State     *presenter.View `json:"state,omitempty"`
	Error     string          `json:"error,omitempty"`
}
