package narrator

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/aaronzipp/midnight-whispers/internal/models"
)

// parseLines decodes NPC dialogue. Malformed JSON yields no lines.
func parseLines(raw string) []models.NPCLine {
	var lines []models.NPCLine
	if err := json.Unmarshal([]byte(stripFences(raw)), &lines); err != nil {
		log.Printf("gemini: failed to parse npc replies: %v", err)
		return []models.NPCLine{}
	}
	return lines
}

// parseVotes decodes NPC ballots. Malformed JSON yields no ballots.
func parseVotes(raw string) []models.VoteResult {
	var votes []models.VoteResult
	if err := json.Unmarshal([]byte(stripFences(raw)), &votes); err != nil {
		log.Printf("gemini: failed to parse votes: %v", err)
		return []models.VoteResult{}
	}
	return votes
}

// stripFences removes a markdown code fence the model sometimes wraps JSON in
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "[]"
	}
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
