package models

import (
	"slices"
	"sync"
	"time"
)

// State is the full snapshot of one game session
type State struct {
	Phase          Phase
	Day            int
	Players        []Player
	Messages       []ChatMessage
	Image          string // data URL of the current scene, empty when none
	Winner         Winner
	Loading        bool
	LoadingMessage string
	Alert          string // startup failure shown on the setup page
}

// Game represents a game session held in memory
type Game struct {
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
	State     State
	mu        sync.RWMutex
	// channel -> connection label
	sseClients map[chan SSEMessage]string
}

// SSEMessage represents a message sent via Server-Sent Events
type SSEMessage struct {
	Event string // Event type (e.g., "chat", "nav-redirect")
	Data  string // HTML content or data to send
}

// NewGame creates a game in the setup phase
func NewGame(code string, roster []Player, now time.Time) *Game {
	players := make([]Player, len(roster))
	copy(players, roster)
	for i := range players {
		players[i].Alive = true
	}
	return &Game{
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
		State: State{
			Phase:   PhaseSetup,
			Day:     1,
			Players: players,
		},
	}
}

// Lock acquires the game's write lock
func (g *Game) Lock() {
	g.mu.Lock()
}

// Unlock releases the game's write lock
func (g *Game) Unlock() {
	g.mu.Unlock()
}

// RLock acquires the game's read lock
func (g *Game) RLock() {
	g.mu.RLock()
}

// RUnlock releases the game's read lock
func (g *Game) RUnlock() {
	g.mu.RUnlock()
}

// Snapshot returns a deep copy of the state, safe to use without the lock
func (g *Game) Snapshot() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.State.Clone()
}

// LastActive returns when the game last changed
func (g *Game) LastActive() time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.UpdatedAt
}

// Clone deep-copies the state's slices
func (s State) Clone() State {
	s.Players = slices.Clone(s.Players)
	s.Messages = slices.Clone(s.Messages)
	return s
}

// Player looks up a player by ID
func (s *State) Player(id string) (*Player, bool) {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// User returns the human player
func (s *State) User() (*Player, bool) {
	for i := range s.Players {
		if s.Players[i].IsUser {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// UserAlive reports whether the human player is still in the game
func (s *State) UserAlive() bool {
	u, ok := s.User()
	return ok && u.Alive
}

// UserRole returns the human player's role, empty before roles are dealt
func (s *State) UserRole() Role {
	if u, ok := s.User(); ok {
		return u.Role
	}
	return ""
}

// AlivePlayers returns the living players in seating order
func (s *State) AlivePlayers() []Player {
	alive := make([]Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}

// AliveNPCs returns the living players not controlled by the user
func (s *State) AliveNPCs() []Player {
	alive := make([]Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.Alive && !p.IsUser {
			alive = append(alive, p)
		}
	}
	return alive
}

// NameOf returns a player's display name, or the ID when unknown
func (s *State) NameOf(id string) string {
	if p, ok := s.Player(id); ok {
		return p.Name
	}
	return id
}

// GetSSEClients returns a copy of the SSE clients map (must be called with lock held)
func (g *Game) GetSSEClients() map[chan SSEMessage]string {
	clients := make(map[chan SSEMessage]string, len(g.sseClients))
	for k, v := range g.sseClients {
		clients[k] = v
	}
	return clients
}

// AddSSEClient adds a new SSE client to the game
func (g *Game) AddSSEClient(client chan SSEMessage, label string) {
	if g.sseClients == nil {
		g.sseClients = make(map[chan SSEMessage]string)
	}
	g.sseClients[client] = label
}

// RemoveSSEClient removes an SSE client from the game
func (g *Game) RemoveSSEClient(client chan SSEMessage) {
	delete(g.sseClients, client)
}

// SSEClientCount returns the number of connected SSE clients
func (g *Game) SSEClientCount() int {
	return len(g.sseClients)
}
