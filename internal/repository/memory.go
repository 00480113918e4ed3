package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type memorySession struct {
	session   entity.Session
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process memory.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *MemorySessionRepository) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := memorySession{session: cloneSession(session)}
	if that.ttl > 0 {
		stored.expiresAt = that.now().Add(that.ttl)
	}

	that.sessions[session.ID] = stored

	return nil
}

func (that *MemorySessionRepository) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	stored, ok := that.sessions[id]
	if !ok || that.isExpired(stored) {
		return nil, apperror.ErrSessionNotFound
	}

	session := cloneSession(&stored.session)

	return &session, nil
}

func (that *MemorySessionRepository) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.sessions[id]
	if !ok || that.isExpired(stored) {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

// CleanupExpired - drops expired sessions and returns how many were removed.
func (that *MemorySessionRepository) CleanupExpired() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for id, stored := range that.sessions {
		if that.isExpired(stored) {
			delete(that.sessions, id)
			removed++
		}
	}

	return removed
}

// MaintainSessions - runs CleanupExpired every interval until ctx is done.
func (that *MemorySessionRepository) MaintainSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.CleanupExpired()
		}
	}
}

func (that *MemorySessionRepository) isExpired(stored memorySession) bool {
	return !stored.expiresAt.IsZero() && !that.now().Before(stored.expiresAt)
}

func cloneSession(session *entity.Session) entity.Session {
	clone := *session
	clone.Moves = append([]entity.Move(nil), session.Moves...)

	return clone
}
