package game

import (
	"sync"
	"time"

	"github.com/playforge/xobot/internal/entity"
)

// Registry maps a chat to at most one live session. Starting a new
// game for a chat silently abandons the old one; an abandoned game is
// not recorded in anyone's statistics.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int64]*Session),
	}
}

// Start - creates a fresh session for the chat, replacing any existing one.
func (that *Registry) Start(chatID, userID int64, theme entity.Theme, turnBudget time.Duration, now func() time.Time) *Session {
	session := NewSession(chatID, userID, theme, turnBudget, now)

	that.mu.Lock()
	that.sessions[chatID] = session
	that.mu.Unlock()

	return session
}

func (that *Registry) Get(chatID int64) (*Session, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[chatID]

	return session, ok
}

func (that *Registry) Remove(chatID int64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.sessions, chatID)
}
