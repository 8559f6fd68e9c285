package narrator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
)

func TestFormatHistoryWindow(t *testing.T) {
	var msgs []models.ChatMessage
	for i := 0; i < game.HistoryWindow+5; i++ {
		msgs = append(msgs, models.ChatMessage{SenderName: "GM", Content: fmt.Sprintf("line %d", i), Kind: models.KindNarration})
	}

	got := strings.Split(formatHistory(msgs), "\n")
	if len(got) != game.HistoryWindow {
		t.Fatalf("got %d lines, want %d", len(got), game.HistoryWindow)
	}
	if got[0] != "GM: line 5" {
		t.Errorf("first line = %q", got[0])
	}
}

func TestFormatHistorySkipsThoughts(t *testing.T) {
	msgs := []models.ChatMessage{
		{SenderName: "GM", Content: "You are the seer", Kind: models.KindThought},
		{SenderName: "Elder", Content: "Good morning", Kind: models.KindDialogue},
	}

	if got := formatHistory(msgs); got != "Elder: Good morning" {
		t.Errorf("got %q", got)
	}
}

func TestStripFences(t *testing.T) {
	tests := map[string]string{
		"":                      "[]",
		"[1]":                   "[1]",
		"```json\n[1]\n```":     "[1]",
		"```\n[{\"a\":1}]\n```": `[{"a":1}]`,
	}
	for in, want := range tests {
		if got := stripFences(in); got != want {
			t.Errorf("stripFences(%q) = %q, want %q", in, got, want)
		}
	}
}
