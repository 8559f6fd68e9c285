package handlers

import (
	"context"
	"html/template"
	"log"
	"net/http"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
	"github.com/aaronzipp/midnight-whispers/internal/render"
)

// HandleNewGame creates a game from the roster, starts it in the background and
// sends the browser to it
func (ctx *Context) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	roomCode := game.GetUniqueRoomCode(ctx.Store)
	g := ctx.Engine.NewGame(roomCode, ctx.Roster)
	ctx.Store.Set(roomCode, g)
	ctx.track(roomCode, models.PhaseSetup)

	log.Printf("Created game: code=%s players=%d", roomCode, len(ctx.Roster))

	ctx.runStep(roomCode, "start", func(c context.Context) error {
		return ctx.Engine.Start(c, g)
	})

	redirect(w, r, "/game/"+roomCode)
}

// renderSetup shows the gathering page, with the alert from a failed start
func (ctx *Context) renderSetup(w http.ResponseWriter, g *models.Game) {
	s := g.Snapshot()
	data := struct {
		Code    string
		Page    string
		Alert   string
		Players template.HTML
		Actions template.HTML
	}{
		Code:    g.Code,
		Page:    pageSetup,
		Alert:   s.Alert,
		Players: template.HTML(render.PlayerList(s)),
		Actions: template.HTML(render.Actions(g.Code, s)),
	}
	ctx.Templates.ExecuteTemplate(w, "setup.html", data)
}
