package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/sync"
	"github.com/dowdarts/spectators-videochat/spectators"
)

// Manager owns every joined viewer session, keyed by session id.
type Manager struct {
	deps     Deps
	sessions *sync.Map[string, *Session]
	logger   *log.Logger
}

func NewManager(deps Deps, logger *log.Logger) *Manager {
	return &Manager{
		deps:     deps,
		sessions: sync.NewMap[string, *Session](),
		logger:   logger,
	}
}

// Open joins a new session. A rejected join is not kept.
func (m *Manager) Open(ctx context.Context, roomCode, token string) (*spectators.SessionSnapshot, error) {
	s := New(uuid.NewString(), m.deps, m.logger)
	if err := s.Join(ctx, roomCode, token); err != nil {
		return nil, err
	}
	m.sessions.Store(s.ID(), s)

	snap := s.Snapshot()
	return &snap, nil
}

func (m *Manager) get(sessionID string) (*Session, error) {
	s, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, errors.Newf(spectators.ErrSessionNotFound, "session %s", sessionID)
	}
	return s, nil
}

func (m *Manager) Snapshot(sessionID string) (*spectators.SessionSnapshot, error) {
	s, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}
	snap := s.Snapshot()
	return &snap, nil
}

func (m *Manager) Watch(sessionID string) (<-chan spectators.SessionSnapshot, func(), error) {
	s, err := m.get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	updates, stop := s.Watch()
	return updates, stop, nil
}

func (m *Manager) DismissNotice(sessionID string) error {
	s, err := m.get(sessionID)
	if err != nil {
		return err
	}
	s.DismissNotice()
	return nil
}

// Leave ends and forgets a session. Unknown ids are not an error.
func (m *Manager) Leave(ctx context.Context, sessionID string) error {
	s, ok := m.sessions.LoadAndDelete(sessionID)
	if !ok {
		return nil
	}
	err := s.Leave(ctx)
	s.closeWatchers()
	return err
}

func (m *Manager) Len() int {
	return m.sessions.Len()
}

// Shutdown leaves every session.
func (m *Manager) Shutdown(ctx context.Context) error {
	sessions := m.sessions.Drain()
	if len(sessions) > 0 {
		m.logger.Info("leaving sessions", log.Int("count", len(sessions)))
	}
	for _, s := range sessions {
		if err := s.Leave(ctx); err != nil {
			m.logger.Warn("leave on shutdown", log.SessionID(s.ID()), log.Error(err))
		}
		s.closeWatchers()
	}
	return nil
}
