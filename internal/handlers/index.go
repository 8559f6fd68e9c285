package handlers

import (
	"context"
	"html/template"
	"net/http"
	"sync"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
	"github.com/aaronzipp/midnight-whispers/internal/store"
)

// Context holds shared application dependencies
type Context struct {
	Store     *store.GameStore
	Engine    *game.Engine
	Templates *template.Template
	Roster    []models.Player
	// Base parents background engine steps, context.Background when nil
	Base context.Context

	steps sync.WaitGroup

	viewMu sync.Mutex
	// game code -> what its clients last received
	views map[string]view
}

// HandleIndex serves the landing page
func (ctx *Context) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ctx.Templates.ExecuteTemplate(w, "index.html", nil)
}

// HandleHealth reports liveness
func (ctx *Context) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
