package sse

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// AddClient adds a new SSE client to the game
func AddClient(g *models.Game, client chan models.SSEMessage, label string) {
	g.Lock()
	defer g.Unlock()

	if n := g.SSEClientCount(); n > 0 {
		log.Printf("WARN: game %s opened an additional SSE connection (%d already open)", g.Code, n)
	}
	g.AddSSEClient(client, label)
}

// RemoveClient removes an SSE client from the game
func RemoveClient(g *models.Game, client chan models.SSEMessage) {
	g.Lock()
	defer g.Unlock()
	g.RemoveSSEClient(client)
	log.Printf("removeSSEClient: game=%s client removed, now have %d total clients", g.Code, g.SSEClientCount())
}

// Broadcast sends a message to all connected SSE clients
func Broadcast(g *models.Game, event, data string) {
	BroadcastAll(g, []models.SSEMessage{{Event: event, Data: data}})
}

// BroadcastAll sends a batch of messages, in order, to all connected SSE clients
func BroadcastAll(g *models.Game, msgs []models.SSEMessage) {
	g.RLock()
	// Collect all client channels while holding the lock
	clients := g.GetSSEClients()
	g.RUnlock()

	if debug {
		log.Printf("broadcastSSE: game=%s events=%d to %d clients", g.Code, len(msgs), len(clients))
	}

	// Send messages WITHOUT holding the lock
	timeout := time.Duration(game.SSETimeoutSeconds) * time.Second
	for client := range clients {
		for _, msg := range msgs {
			select {
			case client <- msg:
			case <-time.After(timeout):
				if debug {
					log.Printf("broadcastSSE: timeout sending %s to client", msg.Event)
				}
			}
		}
	}
}

// Write encodes one event on the stream. Each line of data gets its own data field
// so multi-line HTML survives the framing.
func Write(w io.Writer, msg models.SSEMessage) error {
	var b strings.Builder
	fmt.Fprintf(&b, "event: %s\n", msg.Event)
	for _, line := range strings.Split(msg.Data, "\n") {
		b.WriteString("data: ")
		b.WriteString(strings.TrimSuffix(line, "\r"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
