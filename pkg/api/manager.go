package api

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yourusername/minigammon/pkg/game"
	"github.com/yourusername/minigammon/pkg/session"
)

// gameEntry is one live session plus its input machine and subscribers.
// Each entry has its own lock: a session is single-threaded by design, so
// commands against it are serialized here.
type gameEntry struct {
	mu       sync.Mutex
	id       string
	session  *session.Session
	input    *session.Input
	messages []string // announcements accumulated since the last drain
	subs     map[*wsClient]struct{}
}

// drainMessages returns and clears the accumulated announcements.
// Callers must hold e.mu.
func (e *gameEntry) drainMessages() []string {
	msgs := e.messages
	e.messages = nil
	return msgs
}

// Manager owns the live sessions, keyed by UUID.
type Manager struct {
	mu    sync.Mutex
	games map[string]*gameEntry
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{games: make(map[string]*gameEntry)}
}

// Create starts a new session and returns its entry.
func (m *Manager) Create(seed int64) *gameEntry {
	entry := &gameEntry{
		id:   uuid.NewString(),
		subs: make(map[*wsClient]struct{}),
	}
	entry.session = session.New(session.Options{
		Roller: game.NewRoller(seed),
		Seed:   seed,
		Announce: func(msg string) {
			// Called with entry.mu held, from inside a session command.
			entry.messages = append(entry.messages, msg)
			entry.broadcastAnnouncement(msg)
		},
	})
	entry.input = session.NewInput(entry.session)

	m.mu.Lock()
	m.games[entry.id] = entry
	m.mu.Unlock()
	return entry
}

// Get returns the entry for id, or nil.
func (m *Manager) Get(id string) *gameEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.games[id]
}

// Delete removes a session and closes its subscribers.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	entry := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()

	if entry == nil {
		return
	}
	entry.mu.Lock()
	for c := range entry.subs {
		c.closeSend()
	}
	entry.subs = make(map[*wsClient]struct{})
	entry.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games)
}
