package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
)

// gameHandleStart deals the roles and opens day one
func (ctx *Context) gameHandleStart(w http.ResponseWriter, r *http.Request, g *models.Game) {
	if err := ctx.Engine.Check(g, game.ActionStart, ""); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("start: game=%s", g.Code)
	ctx.runStep(g.Code, "start", func(c context.Context) error {
		return ctx.Engine.Start(c, g)
	})
	w.WriteHeader(http.StatusNoContent)
}

// gameHandleRestart puts a fresh roster back at the table
func (ctx *Context) gameHandleRestart(w http.ResponseWriter, r *http.Request, g *models.Game) {
	if err := ctx.Engine.Reset(g, ctx.Roster); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("restart: game=%s", g.Code)
	redirect(w, r, game.PhasePathFor(g.Code, models.PhaseSetup))
}
