package service

import (
	"context"
	"sync"
	"time"

	"github.com/lessonwise/schedule-console/internal/schedule"
	"go.uber.org/zap"
)

const (
	sessionTTL      = 30 * time.Minute
	janitorInterval = 5 * time.Minute
)

// SessionStore keeps one GridSession per open console view and evicts the
// ones nobody has touched for a while.
type SessionStore struct {
	builder *schedule.GridBuilder
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*GridSession
	stopChan chan struct{}
}

func NewSessionStore(builder *schedule.GridBuilder, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		builder:  builder,
		logger:   logger,
		sessions: make(map[string]*GridSession),
		stopChan: make(chan struct{}),
	}
}

// GetOrCreate returns the session for id, creating it on first use.
func (st *SessionStore) GetOrCreate(id string) *GridSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[id]; ok {
		return s
	}
	s := NewGridSession(st.builder, st.logger)
	st.sessions[id] = s
	return s
}

// Get returns the session for id, or nil when none exists.
func (st *SessionStore) Get(id string) *GridSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// Start launches the background eviction loop.
func (st *SessionStore) Start(ctx context.Context) {
	st.logger.Info("Starting grid session janitor")
	go st.runJanitor(ctx)
}

// Stop halts the eviction loop.
func (st *SessionStore) Stop() {
	st.logger.Info("Stopping grid session janitor")
	close(st.stopChan)
}

func (st *SessionStore) runJanitor(ctx context.Context) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.evictIdle()
		case <-st.stopChan:
			st.logger.Info("Grid session janitor stopped")
			return
		case <-ctx.Done():
			st.logger.Info("Grid session janitor cancelled")
			return
		}
	}
}

func (st *SessionStore) evictIdle() {
	cutoff := time.Now().Add(-sessionTTL)

	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		if s.IdleSince(cutoff) {
			s.Close()
			delete(st.sessions, id)
			st.logger.Info("Evicted idle grid session", zap.String("session_id", id))
		}
	}
}
