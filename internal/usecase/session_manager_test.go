package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func storedSession(id string, moves []entity.Move, current int) *entity.Session {
	return &entity.Session{
		ID:          id,
		BoardSize:   entity.DefaultBoardSize,
		Moves:       moves,
		CurrentMove: current,
	}
}

func TestSessionManager_NewSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores an empty game", func(t *testing.T) {
		// Given: a repository accepting the new session
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		repo.On("CreateOrUpdate", ctx, mock.MatchedBy(func(session *entity.Session) bool {
			return session.ID != "" &&
				session.BoardSize == entity.DefaultBoardSize &&
				len(session.Moves) == 0 &&
				session.CurrentMove == 0
		})).Return(nil).Once()

		// When: creating a session
		id, state, err := manager.NewSession(ctx)

		// Then: an id and the initial state are returned
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, 0, state.CurrentMove)
		assert.Equal(t, entity.PlayerX, state.NextPlayer)
		assert.Equal(t, gomoku.StatusInProgress, state.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Returns the storage error", func(t *testing.T) {
		// Given: a failing repository
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Session")).Return(errRedisDown).Once()

		// When: creating a session
		id, _, err := manager.NewSession(ctx)

		// Then: the error is wrapped
		require.ErrorIs(t, err, errRedisDown)
		assert.Empty(t, id)
	})
}

func TestSessionManager_PlayMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves the new move", func(t *testing.T) {
		// Given: a stored session with one X move
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		repo.On("GetByID", ctx, "s1").Return(storedSession("s1", []entity.Move{{Row: 7, Col: 7}}, 1), nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.MatchedBy(func(session *entity.Session) bool {
			return session.ID == "s1" &&
				session.CurrentMove == 2 &&
				assert.ObjectsAreEqual([]entity.Move{{Row: 7, Col: 7}, {Row: 7, Col: 8}}, session.Moves)
		})).Return(nil).Once()

		// When: O plays next to it
		state, err := manager.PlayMove(ctx, "s1", 7, 8)

		// Then: the new state is returned
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, state.Board.At(7, 8))
		assert.Equal(t, entity.PlayerX, state.NextPlayer)
		repo.AssertExpectations(t)
	})

	t.Run("Rejected moves are not saved", func(t *testing.T) {
		// Given: a stored session where (7, 7) is taken
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		repo.On("GetByID", ctx, "s1").Return(storedSession("s1", []entity.Move{{Row: 7, Col: 7}}, 1), nil).Once()

		// When: O plays the same cell
		state, err := manager.PlayMove(ctx, "s1", 7, 7)

		// Then: the rejection is returned with the unchanged state
		require.ErrorIs(t, err, apperror.ErrMoveRejected)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, 1, state.CurrentMove)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Unknown session", func(t *testing.T) {
		// Given: the session does not exist
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		repo.On("GetByID", ctx, "missing").Return(nil, apperror.ErrSessionNotFound).Once()

		// When: playing a move
		_, err := manager.PlayMove(ctx, "missing", 0, 0)

		// Then: ErrSessionNotFound is returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Corrupt stored moves", func(t *testing.T) {
		// Given: a stored session with a duplicated move
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		moves := []entity.Move{{Row: 1, Col: 1}, {Row: 1, Col: 1}}
		repo.On("GetByID", ctx, "s1").Return(storedSession("s1", moves, 2), nil).Once()

		// When: playing a move
		_, err := manager.PlayMove(ctx, "s1", 0, 0)

		// Then: the session is reported as corrupt, not as a rejected move
		require.ErrorIs(t, err, apperror.ErrCorruptSession)
		assert.NotErrorIs(t, err, apperror.ErrMoveRejected)
	})

	t.Run("Storage failure on save", func(t *testing.T) {
		// Given: a repository failing on write
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		repo.On("GetByID", ctx, "s1").Return(storedSession("s1", nil, 0), nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Session")).Return(errRedisDown).Once()

		// When: playing a move
		_, err := manager.PlayMove(ctx, "s1", 0, 0)

		// Then: the storage error is returned
		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestSessionManager_JumpTo(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves the new position without touching the moves", func(t *testing.T) {
		// Given: a stored session with three moves
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		moves := []entity.Move{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}
		repo.On("GetByID", ctx, "s1").Return(storedSession("s1", moves, 3), nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.MatchedBy(func(session *entity.Session) bool {
			return session.CurrentMove == 1 && assert.ObjectsAreEqual(moves, session.Moves)
		})).Return(nil).Once()

		// When: jumping to move 1
		state, err := manager.JumpTo(ctx, "s1", 1)

		// Then: O is to move and the history is intact
		require.NoError(t, err)
		assert.Equal(t, 1, state.CurrentMove)
		assert.Equal(t, entity.PlayerO, state.NextPlayer)
		assert.Equal(t, []int{0, 1, 2, 3}, state.Moves)
		repo.AssertExpectations(t)
	})

	t.Run("Out of range", func(t *testing.T) {
		// Given: a stored session with one move
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		repo.On("GetByID", ctx, "s1").Return(storedSession("s1", []entity.Move{{Row: 0, Col: 0}}, 1), nil).Once()

		// When: jumping past the end
		state, err := manager.JumpTo(ctx, "s1", 5)

		// Then: ErrOutOfRange is returned and nothing is saved
		require.ErrorIs(t, err, apperror.ErrOutOfRange)
		assert.Equal(t, 1, state.CurrentMove)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})
}

func TestSessionManager_GetState(t *testing.T) {
	ctx := context.Background()

	// Given: a stored session where X has won
	repo := newMockSessionRepo()
	manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

	moves := []entity.Move{
		{Row: 0, Col: 0}, {Row: 0, Col: 1},
		{Row: 1, Col: 0}, {Row: 0, Col: 2},
		{Row: 2, Col: 0}, {Row: 0, Col: 3},
		{Row: 3, Col: 0}, {Row: 0, Col: 4},
		{Row: 4, Col: 0},
	}
	repo.On("GetByID", ctx, "s1").Return(storedSession("s1", moves, 9), nil).Once()

	// When: reading the state
	state, err := manager.GetState(ctx, "s1")

	// Then: X is the winner
	require.NoError(t, err)
	assert.Equal(t, gomoku.StatusWon, state.Status)
	assert.Equal(t, entity.PlayerX, state.Winner)
	assert.Len(t, state.Moves, 10)
}

func TestSessionManager_EndSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the session", func(t *testing.T) {
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		repo.On("DeleteByID", ctx, "s1").Return(nil).Once()

		require.NoError(t, manager.EndSession(ctx, "s1"))
		repo.AssertExpectations(t)
	})

	t.Run("Unknown session", func(t *testing.T) {
		repo := newMockSessionRepo()
		manager := NewSessionManager(newTestLogger(), repo, entity.DefaultBoardSize)

		repo.On("DeleteByID", ctx, "s1").Return(apperror.ErrSessionNotFound).Once()

		assert.ErrorIs(t, manager.EndSession(ctx, "s1"), apperror.ErrSessionNotFound)
	})
}

func TestSessionManager_ConcurrentMoves(t *testing.T) {
	ctx := context.Background()

	// Given: a session in the memory store
	manager := NewSessionManager(newTestLogger(), repository.NewMemorySessionRepository(0), entity.DefaultBoardSize)

	id, _, err := manager.NewSession(ctx)
	require.NoError(t, err)

	// When: many callers play distinct cells at once; even rows and columns never touch, so nobody wins
	const players = 30

	var wg sync.WaitGroup
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, playErr := manager.PlayMove(ctx, id, 2*(i/8), 2*(i%8))
			assert.NoError(t, playErr)
		}(i)
	}
	wg.Wait()

	// Then: every move was applied exactly once and no lock is left behind
	state, err := manager.GetState(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, players, state.CurrentMove)
	assert.Len(t, state.Moves, players+1)
	assert.Equal(t, 0, manager.locks.len())
}
