package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/presenter"
)

var (
	ErrNoSession      = errors.New("no session selected")
	ErrMissingPayload = errors.New("missing payload field")
)

func (that *Server) handleNewSession(ctx context.Context, conn *connection, msg *Message) error {
	id, state, err := that.sessions.NewSession(ctx)
	if err != nil {
		that.logger.Error("failed to create session", "error", err)
		return that.sendError(conn, msg.Action, "failed to create a new session", nil)
	}

	conn.sessionID = id

	return that.sendState(conn, msg.Action, state)
}

func (that *Server) handleResumeSession(ctx context.Context, conn *connection, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendError(conn, msg.Action, err.Error(), nil)
	}

	if payload.SessionID == "" {
		return that.sendError(conn, msg.Action, fmt.Sprintf("%s: session_id", ErrMissingPayload), nil)
	}

	state, err := that.sessions.GetState(ctx, payload.SessionID)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err, nil)
	}

	conn.sessionID = payload.SessionID

	return that.sendState(conn, msg.Action, state)
}

func (that *Server) handleEndSession(ctx context.Context, conn *connection, msg *Message) error {
	id, err := that.sessionID(conn, msg)
	if err != nil {
		return that.sendError(conn, msg.Action, err.Error(), nil)
	}

	if err = that.sessions.EndSession(ctx, id); err != nil {
		return that.sendUseCaseError(conn, msg.Action, err, nil)
	}

	if conn.sessionID == id {
		conn.sessionID = ""
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{SessionID: id})
}

func (that *Server) handleMove(ctx context.Context, conn *connection, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendError(conn, msg.Action, err.Error(), nil)
	}

	id, err := that.sessionID(conn, msg)
	if err != nil {
		return that.sendError(conn, msg.Action, err.Error(), nil)
	}

	if payload.Row == nil || payload.Col == nil {
		return that.sendError(conn, msg.Action, fmt.Sprintf("%s: row and col", ErrMissingPayload), nil)
	}

	state, err := that.sessions.PlayMove(ctx, id, *payload.Row, *payload.Col)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err, &state)
	}

	return that.sendState(conn, msg.Action, state)
}

func (that *Server) handleJump(ctx context.Context, conn *connection, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendError(conn, msg.Action, err.Error(), nil)
	}

	id, err := that.sessionID(conn, msg)
	if err != nil {
		return that.sendError(conn, msg.Action, err.Error(), nil)
	}

	if payload.Move == nil {
		return that.sendError(conn, msg.Action, fmt.Sprintf("%s: move", ErrMissingPayload), nil)
	}

	state, err := that.sessions.JumpTo(ctx, id, *payload.Move)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err, &state)
	}

	return that.sendState(conn, msg.Action, state)
}

func (that *Server) handleState(ctx context.Context, conn *connection, msg *Message) error {
	id, err := that.sessionID(conn, msg)
	if err != nil {
		return that.sendError(conn, msg.Action, err.Error(), nil)
	}

	state, err := that.sessions.GetState(ctx, id)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err, nil)
	}

	return that.sendState(conn, msg.Action, state)
}

// sessionID - the session named in the payload, otherwise the one bound to the connection.
func (that *Server) sessionID(conn *connection, msg *Message) (string, error) {
	payload, err := decodePayload(msg)
	if err != nil {
		return "", err
	}

	if payload.SessionID != "" {
		return payload.SessionID, nil
	}

	if conn.sessionID == "" {
		return "", ErrNoSession
	}

	return conn.sessionID, nil
}

func (that *Server) sendState(conn *connection, action string, state gomoku.State) error {
	return that.sendMessage(conn, action, ResponsePayload{
		SessionID: conn.sessionID,
		State:     presenter.NewView(state),
	})
}

// sendUseCaseError - answers game rule errors with the unchanged state, other failures without it.
func (that *Server) sendUseCaseError(conn *connection, action string, err error, state *gomoku.State) error {
	switch {
	case errors.Is(err, apperror.ErrMoveRejected), errors.Is(err, apperror.ErrOutOfRange):
		return that.sendError(conn, action, err.Error(), state)
	case errors.Is(err, apperror.ErrSessionNotFound):
		return that.sendError(conn, action, apperror.ErrSessionNotFound.Error(), nil)
	default:
		that.logger.Error("session operation failed", "action", action, "error", err)
		return that.sendError(conn, action, "internal error", nil)
	}
}

func (that *Server) sendError(conn *connection, action, message string, state *gomoku.State) error {
	payload := ResponsePayload{
		SessionID: conn.sessionID,
		Error:     message,
	}

	if state != nil {
		payload.State = presenter.NewView(*state)
	}

	return that.sendMessage(conn, action, payload)
}

func decodePayload(msg *Message) (RequestPayload, error) {
	var payload RequestPayload

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
