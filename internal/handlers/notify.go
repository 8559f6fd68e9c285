package handlers

import (
	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
	"github.com/aaronzipp/midnight-whispers/internal/render"
	"github.com/aaronzipp/midnight-whispers/internal/sse"
)

// view is what a game's clients were last sent
type view struct {
	path  string
	scene string
}

// Notify pushes the game's current state to its SSE clients. The engine calls it
// after every state change. The scene is only resent when it changed, and a
// nav-redirect follows when the phase moved to another page.
func (ctx *Context) Notify(g *models.Game) {
	s := g.Snapshot()
	path := game.PhasePathFor(g.Code, s.Phase)
	scene := render.Scene(s)

	ctx.viewMu.Lock()
	if ctx.views == nil {
		ctx.views = make(map[string]view)
	}
	last, seen := ctx.views[g.Code]
	ctx.views[g.Code] = view{path: path, scene: scene}
	ctx.viewMu.Unlock()

	msgs := stateMessages(g.Code, s, scene, !seen || last.scene != scene)
	if seen && last.path != path {
		msgs = append(msgs, models.SSEMessage{Event: sse.EventNavRedirect, Data: render.RedirectSnippet(g.Code, path)})
	}
	sse.BroadcastAll(g, msgs)
}

// track records the page a new game's clients start on
func (ctx *Context) track(roomCode string, phase models.Phase) {
	ctx.viewMu.Lock()
	defer ctx.viewMu.Unlock()
	if ctx.views == nil {
		ctx.views = make(map[string]view)
	}
	ctx.views[roomCode] = view{path: game.PhasePathFor(roomCode, phase)}
}

// Forget drops what was tracked for a removed game
func (ctx *Context) Forget(roomCode string) {
	ctx.viewMu.Lock()
	defer ctx.viewMu.Unlock()
	delete(ctx.views, roomCode)
}

// stateMessages renders every fragment of s, the scene only when withScene is set
func stateMessages(roomCode string, s models.State, scene string, withScene bool) []models.SSEMessage {
	msgs := []models.SSEMessage{
		{Event: sse.EventStatus, Data: render.Status(s)},
	}
	if withScene {
		msgs = append(msgs, models.SSEMessage{Event: sse.EventScene, Data: scene})
	}
	return append(msgs,
		models.SSEMessage{Event: sse.EventPlayers, Data: render.PlayerList(s)},
		models.SSEMessage{Event: sse.EventChat, Data: render.ChatLog(s)},
		models.SSEMessage{Event: sse.EventActions, Data: render.Actions(roomCode, s)},
	)
}
