package sse

// SSE event type constants
const (
	EventNavRedirect = "nav-redirect"
	EventStatus      = "status"
	EventScene       = "scene"
	EventPlayers     = "players"
	EventChat        = "chat"
	EventActions     = "actions"
)
