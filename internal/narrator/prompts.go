package narrator

import (
	"strings"
	"text/template"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
)

var promptFuncs = template.FuncMap{
	"history": formatHistory,
}

var introPrompt = template.Must(template.New("intro").Funcs(promptFuncs).Parse(`
You are the Game Master of a game of Werewolf.

Players and their role assignments (this is SECRET: never reveal in the public narration who the werewolves are):
{{range .Players}}- {{.Name}}: {{.Role}} ({{.Bio}})
{{end}}
Today is the first day of the game. Write an opening that describes the morning atmosphere of this remote village and tells everyone that a murder happened in the village (nobody knows who the killer is).
The mood should be suspenseful and tense. Answer in {{.Language}}, in no more than 150 words.
`))

var npcPrompt = template.Must(template.New("npc").Funcs(promptFuncs).Parse(`
You are voicing the NPCs of a game of Werewolf.

Living players (use the IDs when replying):
{{range .Players}}{{if .Alive}}- ID: "{{.ID}}" | Name: "{{.Name}}" | Role: "{{.Role}}" (secret) | Traits and personality: "{{.Bio}}"
{{end}}{{end}}
Conversation so far:
{{history .History}}
The player (ID: {{.UserID}}) says: "{{.UserMessage}}"

Task:
Pick 1 to 2 living NPCs (not the user) to react to what the player said.

Rules:
1. senderId must be one of the exact IDs from the list above.
2. Each reply must be vivid and match that character's traits and personality.
   - For example an old village chief speaks slowly and gravely; a blacksmith is blunt and rough.
3. Role-play:
   - Werewolf NPCs try to hide their identity and act like innocent villagers.
   - Villager NPCs suspect others according to their personality.
   - The seer NPC hints obscurely or acts with caution.

Reply with a JSON array only, no markdown, in this shape:
[
  { "senderId": "player_id", "content": "reply text" }
]
Write the replies in {{.Language}}.
`))

var votePrompt = template.Must(template.New("vote").Funcs(promptFuncs).Parse(`
It is time to vote in a game of Werewolf. Each NPC votes according to the conversation and their own role's logic.
The goal of the village is to eliminate the werewolves.

Living players:
{{range .Players}}{{if .Alive}}- {{.Name}} (ID: {{.ID}})
{{end}}{{end}}
Secret role information:
{{range .Players}}- {{.Name}}: {{.Role}}
{{end}}
Recent conversation:
{{history .History}}

Rules:
1. Werewolves try to vote for innocent villagers, or follow the crowd to protect themselves when suspected.
2. Villagers vote for whoever they find most suspicious.
3. Every living NPC (not the user) casts exactly one vote.

Reply with a JSON array:
[
  { "voterId": "npc_id", "targetId": "target_player_id", "reason": "short reason" }
]
Write the reasons in {{.Language}}.
`))

var nightPrompt = template.Must(template.New("night").Parse(`
You are the Game Master of a game of Werewolf.
{{if not .Victim}}Nobody died. Describe a night that passed without incident.
{{else if .ByVote}}{{.Victim}} was executed by the villagers' vote during the day.
{{else}}{{.Victim}} was attacked and killed by the werewolves during the night.
{{end}}
Describe what happened in one short, atmospheric paragraph in {{.Language}}. No more than 100 words.
`))

var imagePrompt = template.Must(template.New("image").Parse(`
An oil painting style illustration for a werewolf game.
Setting: A medieval village.
Time: {{if .Night}}Night{{else}}Day{{end}}. Day {{.Day}}.
Context: {{.Context}}
Atmosphere: Mysterious, tense, dark fantasy.
No text in the image.
`))

type introData struct {
	Players  []models.Player
	Language string
}

type npcData struct {
	Players     []models.Player
	History     []models.ChatMessage
	UserID      string
	UserMessage string
	Language    string
}

type voteData struct {
	Players  []models.Player
	History  []models.ChatMessage
	Language string
}

type nightData struct {
	Victim   string
	ByVote   bool
	Language string
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// formatHistory renders the trailing public chat window as "name: content" lines.
// Private thoughts never reach the model.
func formatHistory(messages []models.ChatMessage) string {
	public := make([]models.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Kind != models.KindThought {
			public = append(public, m)
		}
	}
	if len(public) > game.HistoryWindow {
		public = public[len(public)-game.HistoryWindow:]
	}
	lines := make([]string, 0, len(public))
	for _, m := range public {
		lines = append(lines, m.SenderName+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}
