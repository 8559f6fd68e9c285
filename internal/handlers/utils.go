package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
)

// getGame looks up a game by room code
func (ctx *Context) getGame(roomCode string) (*models.Game, bool) {
	return ctx.Store.Get(roomCode)
}

// runStep runs an engine step detached from the request. Progress reaches the
// browser over SSE.
func (ctx *Context) runStep(roomCode, name string, step func(context.Context) error) {
	base := ctx.Base
	if base == nil {
		base = context.Background()
	}
	ctx.steps.Add(1)
	go func() {
		defer ctx.steps.Done()
		if err := step(base); err != nil {
			log.Printf("%s: game=%s err=%v", name, roomCode, err)
		}
	}()
}

// Wait blocks until every background step has finished
func (ctx *Context) Wait() {
	ctx.steps.Wait()
}

// statusFor maps engine errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrBusy),
		errors.Is(err, game.ErrWrongPhase),
		errors.Is(err, game.ErrUserDead),
		errors.Is(err, game.ErrNotYourRole):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidTarget),
		errors.Is(err, game.ErrEmptyMessage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if debug {
		log.Printf("request rejected: status=%d err=%v", code, err)
	}
	http.Error(w, err.Error(), code)
}

// redirect navigates HTMX requests with HX-Redirect and plain requests with a 303
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
