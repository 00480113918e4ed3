package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/presenter"
)

type sessionReader interface {
	GetState(ctx context.Context, id string) (gomoku.State, error)
}

// sessionStateHandler - GET /sessions/{id} answers the presentation view of the session.
func (that *Server) sessionStateHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "sessionStateHandler")

	state, err := that.sessions.GetState(r.Context(), r.PathValue("id"))
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get session state", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err = json.NewEncoder(w).Encode(presenter.NewView(state)); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
