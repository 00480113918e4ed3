package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager runs games stored in a session repository.
// Every operation on a session holds that session's lock from load to save.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	boardSize   int

	locks *sessionLocks
	now   func() time.Time
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, boardSize int) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,
		boardSize:   boardSize,

		locks: newSessionLocks(),
		now:   time.Now,
	}
}

// NewSession - starts a game on an empty board.
func (that *SessionManager) NewSession(ctx context.Context) (string, gomoku.State, error) {
	history := gomoku.NewHistory(that.boardSize)
	id := uuid.NewString()

	if err := that.saveSession(ctx, id, history); err != nil {
		return "", gomoku.State{}, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", id, "boardSize", that.boardSize)

	return id, history.CurrentState(), nil
}

// PlayMove - plays (row, col) in the session. A rejected move is returned as an error and nothing is saved.
func (that *SessionManager) PlayMove(ctx context.Context, id string, row, col int) (gomoku.State, error) {
	log := that.logger.With("method", "PlayMove", "sessionID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	history, err := that.loadHistory(ctx, id)
	if err != nil {
		return gomoku.State{}, err
	}

	if err = history.PlayMove(row, col); err != nil {
		if errors.Is(err, apperror.ErrMoveRejected) {
			log.Debug("move rejected", "row", row, "col", col, "reason", err)
		}

		return history.CurrentState(), fmt.Errorf("failed to play move: %w", err)
	}

	if err = that.saveSession(ctx, id, history); err != nil {
		return gomoku.State{}, fmt.Errorf("failed to update session: %w", err)
	}

	state := history.CurrentState()
	if state.HasWinner() {
		log.Info("game won", "winner", state.Winner.String(), "move", state.CurrentMove)
	}

	return state, nil
}

// JumpTo - displays an earlier or later recorded position of the session.
func (that *SessionManager) JumpTo(ctx context.Context, id string, move int) (gomoku.State, error) {
	unlock := that.locks.lock(id)
	defer unlock()

	history, err := that.loadHistory(ctx, id)
	if err != nil {
		return gomoku.State{}, err
	}

	if err = history.JumpTo(move); err != nil {
		return history.CurrentState(), fmt.Errorf("failed to jump: %w", err)
	}

	if err = that.saveSession(ctx, id, history); err != nil {
		return gomoku.State{}, fmt.Errorf("failed to update session: %w", err)
	}

	return history.CurrentState(), nil
}

func (that *SessionManager) GetState(ctx context.Context, id string) (gomoku.State, error) {
	unlock := that.locks.lock(id)
	defer unlock()

	history, err := that.loadHistory(ctx, id)
	if err != nil {
		return gomoku.State{}, err
	}

	return history.CurrentState(), nil
}

// EndSession - discards the session.
func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", id)

	return nil
}

func (that *SessionManager) loadHistory(ctx context.Context, id string) (*gomoku.History, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	history, err := gomoku.Replay(session.BoardSize, session.Moves, session.CurrentMove)
	if err != nil {
		that.logger.Error("stored session is corrupt", "sessionID", id, "error", err)
		return nil, fmt.Errorf("%w: %s", apperror.ErrCorruptSession, err)
	}

	return history, nil
}

func (that *SessionManager) saveSession(ctx context.Context, id string, history *gomoku.History) error {
	session := &entity.Session{
		ID:          id,
		BoardSize:   history.BoardSize(),
		Moves:       history.Moves(),
		CurrentMove: history.CurrentMove(),
		UpdatedAt:   that.now().UTC(),
	}

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		that.logger.Error("failed to save session", "sessionID", id, "error", err)
		return err
	}

	return nil
}
