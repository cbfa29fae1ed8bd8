package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

// ThreadCreator creates conversation threads on the remote platform.
type ThreadCreator interface {
	CreateThread(ctx context.Context) (domain.Thread, error)
}

// Sessions maps opaque session ids to their conversation thread, one thread
// per session for the life of the process. The map is in-memory only; a
// restart drops every mapping.
type Sessions struct {
	mu      sync.Mutex
	creator ThreadCreator
	threads map[string]string
	log     zerolog.Logger
}

// NewSessions creates an empty session registry.
func NewSessions(creator ThreadCreator, log zerolog.Logger) *Sessions {
	return &Sessions{
		creator: creator,
		threads: make(map[string]string),
		log:     log,
	}
}

// GetOrCreate returns the thread id for a session, creating a remote thread
// on first use. The thread is created outside the lock and stored
// last-write-wins: two concurrent first requests for the same session can
// each create a thread, with the loser's thread orphaned. The mutex guards
// the map, not that outcome.
func (s *Sessions) GetOrCreate(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	threadID, ok := s.threads[sessionID]
	s.mu.Unlock()
	if ok {
		return threadID, nil
	}

	s.log.Info().Str("session", sessionID).Msg("creating thread for session")
	thread, err := s.creator.CreateThread(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}
	s.log.Info().Str("session", sessionID).Str("thread", thread.ID).Msg("thread created")

	s.mu.Lock()
	s.threads[sessionID] = thread.ID
	s.mu.Unlock()
	return thread.ID, nil
}

// Clear removes a session's thread mapping. Clearing an unknown session is
// not an error.
func (s *Sessions) Clear(sessionID string) {
	s.mu.Lock()
	delete(s.threads, sessionID)
	s.mu.Unlock()
}
