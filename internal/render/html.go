package render

import (
	htmlpkg "html"
	"strconv"
	"strings"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
)

var phaseLabels = map[models.Phase]string{
	models.PhaseSetup:         "Gathering",
	models.PhaseDayIntro:      "Morning",
	models.PhaseDayDiscussion: "Discussion",
	models.PhaseDayVoting:     "Voting",
	models.PhaseNightAction:   "Night",
	models.PhaseNightResult:   "Dawn",
	models.PhaseGameOver:      "Game Over",
}

var roleLabels = map[models.Role]string{
	models.RoleWerewolf: "Werewolf",
	models.RoleVillager: "Villager",
	models.RoleSeer:     "Seer",
}

// PhaseLabel returns the display name of a phase
func PhaseLabel(p models.Phase) string {
	if label, ok := phaseLabels[p]; ok {
		return label
	}
	return string(p)
}

// RoleLabel returns the display name of a role
func RoleLabel(r models.Role) string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return "Unknown"
}

// Status generates HTML for the day/phase header and the user's own role
func Status(s models.State) string {
	var b strings.Builder
	b.WriteString(`<div class="status-bar`)
	if s.Phase.IsNight() {
		b.WriteString(` status-night`)
	}
	b.WriteString(`"><span class="day">Day `)
	b.WriteString(strconv.Itoa(s.Day))
	b.WriteString(`</span><span class="phase">`)
	b.WriteString(PhaseLabel(s.Phase))
	b.WriteString(`</span>`)
	if role := s.UserRole(); role != "" {
		b.WriteString(`<span class="badge-pill role-`)
		b.WriteString(string(role))
		b.WriteString(`">You are the `)
		b.WriteString(RoleLabel(role))
		b.WriteString(`</span>`)
	}
	if s.Phase != models.PhaseSetup && !s.UserAlive() {
		b.WriteString(`<span class="badge-pill badge-dead">Spectating</span>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Scene generates HTML for the scene illustration with its loading overlay
func Scene(s models.State) string {
	var b strings.Builder
	b.WriteString(`<div class="scene">`)
	if s.Image != "" {
		b.WriteString(`<img class="scene-image" alt="Scene" src="`)
		b.WriteString(htmlpkg.EscapeString(s.Image))
		b.WriteString(`">`)
	} else {
		b.WriteString(`<div class="scene-empty">The village waits in the mist...</div>`)
	}
	if s.Loading {
		b.WriteString(`<div class="scene-overlay"><div class="spinner"></div><p>`)
		b.WriteString(htmlpkg.EscapeString(s.LoadingMessage))
		b.WriteString(`</p></div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// PlayerList generates HTML for the player list. A werewolf user sees their pack,
// and every role is revealed once the game is over.
func PlayerList(s models.State) string {
	userIsWolf := s.UserRole() == models.RoleWerewolf
	reveal := s.Phase == models.PhaseGameOver

	var b strings.Builder
	b.WriteString(`<h2>Villagers (`)
	b.WriteString(strconv.Itoa(len(s.AlivePlayers())))
	b.WriteString(`/`)
	b.WriteString(strconv.Itoa(len(s.Players)))
	b.WriteString(`)</h2><ul class="player-list">`)
	for _, p := range s.Players {
		b.WriteString(`<li class="player-item`)
		if !p.Alive {
			b.WriteString(` player-dead`)
		}
		if p.IsUser {
			b.WriteString(` player-self`)
		}
		b.WriteString(`"><span class="player-name">`)
		b.WriteString(htmlpkg.EscapeString(p.Name))
		b.WriteString(`</span>`)
		if p.IsUser {
			b.WriteString(`<span class="badge-pill badge-self">You</span>`)
		}
		switch {
		case reveal:
			b.WriteString(`<span class="badge-pill role-`)
			b.WriteString(string(p.Role))
			b.WriteString(`">`)
			b.WriteString(RoleLabel(p.Role))
			b.WriteString(`</span>`)
		case userIsWolf && !p.IsUser && p.IsWerewolf():
			b.WriteString(`<span class="badge-pill role-werewolf">Packmate</span>`)
		}
		if !p.Alive {
			b.WriteString(`<span class="badge-pill badge-dead">Dead</span>`)
		}
		if p.Bio != "" {
			b.WriteString(`<p class="player-bio text-muted">`)
			b.WriteString(htmlpkg.EscapeString(p.Bio))
			b.WriteString(`</p>`)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// ChatLog generates HTML for the message log
func ChatLog(s models.State) string {
	var b strings.Builder
	b.WriteString(`<ul class="chat-log">`)
	for _, m := range s.Messages {
		b.WriteString(`<li class="chat-message chat-`)
		b.WriteString(string(m.Kind))
		if m.SenderID == models.UserID {
			b.WriteString(` chat-self`)
		}
		b.WriteString(`">`)
		if m.Kind == models.KindDialogue {
			b.WriteString(`<span class="chat-sender">`)
			b.WriteString(htmlpkg.EscapeString(m.SenderName))
			b.WriteString(`</span>`)
		}
		b.WriteString(`<p class="chat-content">`)
		b.WriteString(strings.ReplaceAll(htmlpkg.EscapeString(m.Content), "\n", "<br>"))
		b.WriteString(`</p></li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// Actions generates HTML for the action panel of the current phase and role
func Actions(code string, s models.State) string {
	if s.Loading {
		var b strings.Builder
		b.WriteString(`<p class="text-muted loading-note">`)
		b.WriteString(htmlpkg.EscapeString(s.LoadingMessage))
		b.WriteString(`</p>`)
		return b.String()
	}

	alive := s.UserAlive()
	switch s.Phase {
	case models.PhaseSetup:
		return postButton(code, "start", "Start Game", "btn btn-primary")
	case models.PhaseDayDiscussion:
		var b strings.Builder
		if alive {
			b.WriteString(`<form class="say-form" hx-post="/game/`)
			b.WriteString(code)
			b.WriteString(`/say" hx-swap="none" hx-on::after-request="if(event.detail.successful) this.reset()"><input type="text" name="message" maxlength="`)
			b.WriteString(strconv.Itoa(game.MaxMessageLength))
			b.WriteString(`" placeholder="Speak to the village..." required autocomplete="off"><button type="submit" class="btn btn-primary">Say</button></form>`)
		} else {
			b.WriteString(`<p class="text-muted">You are dead. You can only watch.</p>`)
		}
		b.WriteString(postButton(code, "vote-start", "Start Voting", "btn btn-secondary"))
		return b.String()
	case models.PhaseDayVoting:
		if !alive {
			return `<p class="text-muted">The village votes without you.</p>` + postButton(code, "vote", "Continue", "btn btn-secondary")
		}
		targets := livingOthers(s, false)
		return targetForm(code, "vote", "Who should be executed?", targets, true)
	case models.PhaseNightAction:
		switch s.UserRole() {
		case models.RoleWerewolf:
			return targetForm(code, "kill", "Choose tonight's victim", livingOthers(s, true), false)
		case models.RoleSeer:
			return targetForm(code, "check", "Whose allegiance will you divine?", livingOthers(s, false), false)
		}
		return `<p class="text-muted">Night falls...</p>`
	case models.PhaseGameOver:
		return Outcome(code, s) + `<a class="btn btn-secondary" href="` + game.PhasePathFor(code, models.PhaseGameOver) + `">Reveal all roles</a>`
	}
	return ""
}

// Outcome generates HTML for the winner banner and restart controls
func Outcome(code string, s models.State) string {
	var b strings.Builder
	b.WriteString(`<div class="card outcome outcome-`)
	b.WriteString(string(s.Winner))
	b.WriteString(`"><h2>`)
	switch s.Winner {
	case models.WinnerVillagers:
		b.WriteString(`The villagers win!`)
	case models.WinnerWerewolves:
		b.WriteString(`The werewolves win!`)
	default:
		b.WriteString(`The game is over`)
	}
	b.WriteString(`</h2>`)
	b.WriteString(postButton(code, "restart", "Play Again", "btn btn-primary"))
	b.WriteString(`</div>`)
	return b.String()
}

// RedirectSnippet returns an HTMX snippet that triggers a client-side redirect
func RedirectSnippet(roomCode, to string) string {
	var b strings.Builder
	b.WriteString(`<div hx-get="/game/`)
	b.WriteString(roomCode)
	b.WriteString(`/redirect?to=`)
	b.WriteString(to)
	b.WriteString(`" hx-trigger="load" hx-swap="none"></div>`)
	return b.String()
}

func postButton(code, action, label, class string) string {
	var b strings.Builder
	b.WriteString(`<form hx-post="/game/`)
	b.WriteString(code)
	b.WriteString(`/`)
	b.WriteString(action)
	b.WriteString(`" hx-swap="none"><button type="submit" class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	b.WriteString(label)
	b.WriteString(`</button></form>`)
	return b.String()
}

func targetForm(code, action, title string, targets []models.Player, allowSkip bool) string {
	var b strings.Builder
	b.WriteString(`<h3>`)
	b.WriteString(title)
	b.WriteString(`</h3><div class="button-stack target-list">`)
	for _, p := range targets {
		b.WriteString(`<form hx-post="/game/`)
		b.WriteString(code)
		b.WriteString(`/`)
		b.WriteString(action)
		b.WriteString(`" hx-swap="none"><input type="hidden" name="target" value="`)
		b.WriteString(htmlpkg.EscapeString(p.ID))
		b.WriteString(`"><button type="submit" class="btn btn-target">`)
		b.WriteString(htmlpkg.EscapeString(p.Name))
		b.WriteString(`</button></form>`)
	}
	if allowSkip {
		b.WriteString(`<form hx-post="/game/`)
		b.WriteString(code)
		b.WriteString(`/`)
		b.WriteString(action)
		b.WriteString(`" hx-swap="none"><input type="hidden" name="target" value="`)
		b.WriteString(game.SkipVote)
		b.WriteString(`"><button type="submit" class="btn btn-secondary">Abstain</button></form>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// livingOthers lists living NPCs, optionally excluding werewolves
func livingOthers(s models.State, excludeWolves bool) []models.Player {
	out := make([]models.Player, 0, len(s.Players))
	for _, p := range s.AliveNPCs() {
		if excludeWolves && p.IsWerewolf() {
			continue
		}
		out = append(out, p)
	}
	return out
}
