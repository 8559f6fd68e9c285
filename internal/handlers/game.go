package handlers

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
	"github.com/aaronzipp/midnight-whispers/internal/render"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// Page segments under /game/:code
const (
	pageSetup   = "setup"
	pagePlay    = "play"
	pageResults = "results"
)

// HandleGameMux routes game subpaths by phase and actions
func (ctx *Context) HandleGameMux(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/game/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" || len(parts) > 2 {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}
	roomCode := strings.ToUpper(parts[0])
	seg := ""
	if len(parts) > 1 {
		seg = parts[1]
	}

	// Redirect helper for HTMX
	if seg == "redirect" {
		to := r.URL.Query().Get("to")
		if to == "" {
			to = "/game/" + roomCode
		} else if !strings.HasPrefix(to, "/") {
			to = "/game/" + roomCode + "/" + to
		}
		w.Header().Set("HX-Location", to)
		w.WriteHeader(http.StatusOK)
		return
	}

	g, exists := ctx.getGame(roomCode)

	// POST actions under /game/:code
	if r.Method == http.MethodPost {
		if !exists {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		switch seg {
		case "start":
			ctx.gameHandleStart(w, r, g)
		case "say":
			ctx.gameHandleSay(w, r, g)
		case "vote-start":
			ctx.gameHandleStartVoting(w, r, g)
		case "vote":
			ctx.gameHandleVote(w, r, g)
		case "kill":
			ctx.gameHandleKill(w, r, g)
		case "check":
			ctx.gameHandleCheck(w, r, g)
		case "restart":
			ctx.gameHandleRestart(w, r, g)
		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Reject unknown subpaths under /game/:code
	if seg != "" && seg != pageSetup && seg != pagePlay && seg != pageResults && seg != "qr" {
		http.NotFound(w, r)
		return
	}
	if !exists {
		redirect(w, r, "/")
		return
	}
	if seg == "qr" {
		ctx.HandleQR(w, r, g)
		return
	}

	// Guard: ensure path matches current phase; redirect canonical path
	currentPath := game.PhasePathFor(roomCode, g.Snapshot().Phase)
	if seg == "" || !strings.HasSuffix(currentPath, "/"+seg) {
		redirect(w, r, currentPath)
		return
	}

	switch seg {
	case pageSetup:
		ctx.renderSetup(w, g)
	case pagePlay:
		ctx.renderPlay(w, g)
	case pageResults:
		ctx.renderResults(w, g)
	}
}

// renderPlay shows the game table
func (ctx *Context) renderPlay(w http.ResponseWriter, g *models.Game) {
	s := g.Snapshot()
	data := struct {
		Code    string
		Page    string
		Status  template.HTML
		Scene   template.HTML
		Chat    template.HTML
		Players template.HTML
		Actions template.HTML
	}{
		Code:    g.Code,
		Page:    pagePlay,
		Status:  template.HTML(render.Status(s)),
		Scene:   template.HTML(render.Scene(s)),
		Chat:    template.HTML(render.ChatLog(s)),
		Players: template.HTML(render.PlayerList(s)),
		Actions: template.HTML(render.Actions(g.Code, s)),
	}
	ctx.Templates.ExecuteTemplate(w, "play.html", data)
}

// gameHandleSay posts the user's line and lets the villagers answer
func (ctx *Context) gameHandleSay(w http.ResponseWriter, r *http.Request, g *models.Game) {
	r.ParseForm()
	text := strings.TrimSpace(r.FormValue("message"))
	if text == "" {
		writeError(w, game.ErrEmptyMessage)
		return
	}
	if err := ctx.Engine.Check(g, game.ActionSay, ""); err != nil {
		writeError(w, err)
		return
	}
	if debug {
		log.Printf("say: game=%s len=%d", g.Code, len(text))
	}
	ctx.runStep(g.Code, "say", func(c context.Context) error {
		return ctx.Engine.Say(c, g, text)
	})
	w.WriteHeader(http.StatusNoContent)
}

// gameHandleStartVoting closes the discussion
func (ctx *Context) gameHandleStartVoting(w http.ResponseWriter, r *http.Request, g *models.Game) {
	if err := ctx.Engine.StartVoting(g); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// gameHandleVote casts the user's ballot and runs the village vote
func (ctx *Context) gameHandleVote(w http.ResponseWriter, r *http.Request, g *models.Game) {
	r.ParseForm()
	target := r.FormValue("target")
	if err := ctx.Engine.Check(g, game.ActionVote, target); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("vote: game=%s target=%q", g.Code, target)
	ctx.runStep(g.Code, "vote", func(c context.Context) error {
		return ctx.Engine.Vote(c, g, target)
	})
	w.WriteHeader(http.StatusNoContent)
}

// gameHandleKill resolves the night with the werewolf user's victim
func (ctx *Context) gameHandleKill(w http.ResponseWriter, r *http.Request, g *models.Game) {
	r.ParseForm()
	target := r.FormValue("target")
	if err := ctx.Engine.Check(g, game.ActionKill, target); err != nil {
		writeError(w, err)
		return
	}
	ctx.runStep(g.Code, "kill", func(c context.Context) error {
		return ctx.Engine.WerewolfKill(c, g, target)
	})
	w.WriteHeader(http.StatusNoContent)
}

// gameHandleCheck lets the seer user divine one player
func (ctx *Context) gameHandleCheck(w http.ResponseWriter, r *http.Request, g *models.Game) {
	r.ParseForm()
	target := r.FormValue("target")
	if err := ctx.Engine.Check(g, game.ActionCheck, target); err != nil {
		writeError(w, err)
		return
	}
	ctx.runStep(g.Code, "check", func(c context.Context) error {
		return ctx.Engine.SeerCheck(c, g, target)
	})
	w.WriteHeader(http.StatusNoContent)
}
