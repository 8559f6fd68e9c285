package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
	"github.com/aaronzipp/midnight-whispers/internal/render"
	"github.com/aaronzipp/midnight-whispers/internal/sse"
)

// HandleSSE streams a game's fragments. The first batch is a full snapshot, plus a
// nav-redirect when the page named by ?page= is stale.
func (ctx *Context) HandleSSE(w http.ResponseWriter, r *http.Request) {
	if debug {
		log.Printf("handleSSE called: %s", r.URL.Path)
	}

	roomCode := strings.ToUpper(strings.Trim(strings.TrimPrefix(r.URL.Path, "/sse/"), "/"))
	if roomCode == "" || strings.Contains(roomCode, "/") {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies

	g, exists := ctx.getGame(roomCode)
	if !exists {
		if debug {
			log.Printf("handleSSE: game %s not found, sending nav-redirect to home", roomCode)
		}
		sse.Write(w, models.SSEMessage{Event: sse.EventNavRedirect, Data: render.RedirectSnippet(roomCode, "/")})
		flusher.Flush()
		return
	}

	// Create client channel
	clientChan := make(chan models.SSEMessage, game.SSEBufferSize)
	sse.AddClient(g, clientChan, r.RemoteAddr)
	defer sse.RemoveClient(g, clientChan)

	// Send the initial snapshot
	s := g.Snapshot()
	msgs := stateMessages(roomCode, s, render.Scene(s), true)
	current := game.PhasePathFor(roomCode, s.Phase)
	if page := r.URL.Query().Get("page"); page != "" && !strings.HasSuffix(current, "/"+page) {
		msgs = append(msgs, models.SSEMessage{Event: sse.EventNavRedirect, Data: render.RedirectSnippet(roomCode, current)})
	}
	for _, msg := range msgs {
		if err := sse.Write(w, msg); err != nil {
			return
		}
	}
	flusher.Flush()

	// Listen for updates
	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			log.Printf("handleSSE: game=%s client %s disconnected", roomCode, r.RemoteAddr)
			return
		case msg := <-clientChan:
			if debug {
				log.Printf("handleSSE: sending event=%s to game=%s", msg.Event, roomCode)
			}
			if err := sse.Write(w, msg); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
