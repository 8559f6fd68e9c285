package game

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aaronzipp/midnight-whispers/internal/models"
	"github.com/google/uuid"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// Narrator voices the game master and every NPC
type Narrator interface {
	Intro(ctx context.Context, players []models.Player) (string, error)
	SceneImage(ctx context.Context, scene Scene) (string, error)
	NPCReplies(ctx context.Context, players []models.Player, history []models.ChatMessage, userMessage string) ([]models.NPCLine, error)
	Votes(ctx context.Context, players []models.Player, history []models.ChatMessage) ([]models.VoteResult, error)
	NightResult(ctx context.Context, victimName string, byVote bool) (string, error)
}

// Scene describes an illustration request
type Scene struct {
	Context string
	Day     int
	Night   bool
}

// EngineConfig wires the engine's collaborators. Zero values get defaults.
type EngineConfig struct {
	Narrator    Narrator
	Random      Random
	Now         func() time.Time
	NewID       func() string
	CallTimeout time.Duration
	SkipImages  bool
	// Notify is called after every state change, without the game lock held
	Notify func(g *models.Game)
}

// Engine drives a game through its phases
type Engine struct {
	narrator    Narrator
	random      Random
	now         func() time.Time
	newID       func() string
	callTimeout time.Duration
	skipImages  bool
	notify      func(g *models.Game)
}

// NewEngine creates an engine from the given config
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		narrator:    cfg.Narrator,
		random:      cfg.Random,
		now:         cfg.Now,
		newID:       cfg.NewID,
		callTimeout: cfg.CallTimeout,
		skipImages:  cfg.SkipImages,
		notify:      cfg.Notify,
	}
	if e.random == nil {
		e.random = globalRandom{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = func() string { return uuid.New().String() }
	}
	if e.callTimeout <= 0 {
		e.callTimeout = DefaultCallTimeout
	}
	return e
}

// NewGame creates a game in the setup phase
func (e *Engine) NewGame(code string, roster []models.Player) *models.Game {
	return models.NewGame(code, roster, e.now())
}

// Reset returns a finished or failed game to setup with a fresh roster
func (e *Engine) Reset(g *models.Game, roster []models.Player) error {
	g.Lock()
	if g.State.Loading {
		g.Unlock()
		return ErrBusy
	}
	g.State = models.NewGame(g.Code, roster, e.now()).State
	g.UpdatedAt = e.now()
	g.Unlock()

	e.changed(g)
	return nil
}

// Start deals roles, narrates the opening and paints the first scene
func (e *Engine) Start(ctx context.Context, g *models.Game) error {
	err := e.begin(g, "Conjuring the opening story and scene...", func(s *models.State) error {
		if err := guardStart(s); err != nil {
			return err
		}
		players, err := AssignRoles(s.Players, e.random)
		if err != nil {
			return err
		}
		s.Players = players
		s.Phase = models.PhaseDayIntro
		s.Alert = ""
		s.Image = ""
		s.Messages = nil
		if notice, ok := e.roleNotice(s); ok {
			s.Messages = append(s.Messages, notice)
		}
		return nil
	})
	if err != nil {
		return err
	}

	snap := g.Snapshot()
	intro, err := call(ctx, e.callTimeout, func(ctx context.Context) (string, error) {
		return e.narrator.Intro(ctx, snap.Players)
	})
	if err != nil {
		log.Printf("start: game=%s intro failed: %v", g.Code, err)
		e.update(g, func(s *models.State) {
			s.Phase = models.PhaseSetup
			s.Messages = nil
			s.Loading = false
			s.LoadingMessage = ""
			s.Alert = "Failed to start the game. Check the API key or try again later."
		})
		return fmt.Errorf("generate intro: %w", err)
	}

	e.update(g, func(s *models.State) {
		s.Messages = append(s.Messages, e.gmMessage(intro, models.KindNarration))
	})

	image := e.paint(ctx, Scene{Context: "Early morning in the village square, fog, mystery", Day: 1})

	e.update(g, func(s *models.State) {
		s.Image = image
		s.Phase = models.PhaseDayDiscussion
		s.Loading = false
		s.LoadingMessage = ""
	})
	log.Printf("start: game=%s started", g.Code)
	return nil
}

// Say posts the user's line, gathers NPC replies and repaints the scene
func (e *Engine) Say(ctx context.Context, g *models.Game, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		text = string([]rune(text)[:MaxMessageLength])
	}

	err := e.begin(g, "The villagers are thinking...", func(s *models.State) error {
		if err := guardSay(s); err != nil {
			return err
		}
		user, _ := s.User()
		s.Messages = append(s.Messages, models.ChatMessage{
			ID:         e.newID(),
			SenderID:   user.ID,
			SenderName: user.Name,
			Content:    text,
			Timestamp:  e.now(),
			Kind:       models.KindDialogue,
		})
		return nil
	})
	if err != nil {
		return err
	}

	snap := g.Snapshot()
	lines, err := call(ctx, e.callTimeout, func(ctx context.Context) ([]models.NPCLine, error) {
		return e.narrator.NPCReplies(ctx, snap.Players, snap.Messages, text)
	})
	if err != nil {
		log.Printf("say: game=%s npc replies failed: %v", g.Code, err)
		lines = nil
	}

	replies := make([]models.ChatMessage, 0, len(lines))
	summary := make([]string, 0, len(lines))
	for _, line := range lines {
		npc, ok := snap.Player(line.SenderID)
		if !ok || npc.IsUser || !npc.Alive || strings.TrimSpace(line.Content) == "" {
			if debug {
				log.Printf("say: game=%s dropping line from sender=%q", g.Code, line.SenderID)
			}
			continue
		}
		replies = append(replies, models.ChatMessage{
			ID:         e.newID(),
			SenderID:   npc.ID,
			SenderName: npc.Name,
			Content:    line.Content,
			Timestamp:  e.now(),
			Kind:       models.KindDialogue,
		})
		summary = append(summary, fmt.Sprintf("%s said %q", npc.Name, line.Content))
	}

	e.update(g, func(s *models.State) {
		s.Messages = append(s.Messages, replies...)
		s.LoadingMessage = "Painting the scene from the latest conversation..."
	})

	sceneContext := fmt.Sprintf("Interaction snapshot:\nPlayer asked: %q\nNPCs responded: %s\nAtmosphere: intense face-to-face conversation, suspicion, dramatic expressions.",
		text, strings.Join(summary, "; "))
	image := e.paint(ctx, Scene{Context: sceneContext, Day: snap.Day})

	e.update(g, func(s *models.State) {
		if image != "" {
			s.Image = image
		}
		s.Loading = false
		s.LoadingMessage = ""
	})
	return nil
}

// StartVoting closes the discussion and opens the ballot
func (e *Engine) StartVoting(g *models.Game) error {
	g.Lock()
	if g.State.Loading {
		g.Unlock()
		return ErrBusy
	}
	if err := guardStartVoting(&g.State); err != nil {
		g.Unlock()
		return err
	}
	g.State.Phase = models.PhaseDayVoting
	g.UpdatedAt = e.now()
	g.Unlock()

	e.changed(g)
	return nil
}

// Vote records the user's ballot, collects the NPC ballots and executes the result.
// A dead user's target is ignored.
func (e *Engine) Vote(ctx context.Context, g *models.Game, targetID string) error {
	var userVote *models.VoteResult
	err := e.begin(g, "The whole village is voting...", func(s *models.State) error {
		if err := guardVote(s, targetID); err != nil {
			return err
		}
		user, ok := s.User()
		if !ok || !user.Alive {
			return nil
		}
		userVote = &models.VoteResult{VoterID: user.ID, TargetID: targetID, Reason: "Player's choice"}
		return nil
	})
	if err != nil {
		return err
	}

	snap := g.Snapshot()
	aiVotes, err := call(ctx, e.callTimeout, func(ctx context.Context) ([]models.VoteResult, error) {
		return e.narrator.Votes(ctx, snap.Players, snap.Messages)
	})
	if err != nil {
		log.Printf("vote: game=%s npc votes failed: %v", g.Code, err)
		aiVotes = nil
	}

	votes := ValidVotes(snap.Players, aiVotes)
	if userVote != nil {
		votes = append(votes, *userVote)
	}
	result := Tally(votes)
	if debug {
		log.Printf("vote: game=%s ballots=%d counts=%v eliminated=%q tie=%v", g.Code, len(votes), result.Counts, result.EliminatedID, result.Tie)
	}

	lines := make([]string, 0, len(votes))
	for _, v := range votes {
		voter := snap.NameOf(v.VoterID)
		if v.TargetID == SkipVote {
			lines = append(lines, fmt.Sprintf("%s abstained (%s)", voter, v.Reason))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s voted for %s (%s)", voter, snap.NameOf(v.TargetID), v.Reason))
	}
	if len(lines) == 0 {
		lines = append(lines, "No ballots were cast.")
	}

	var verdict string
	switch {
	case result.EliminatedID != "":
		name := snap.NameOf(result.EliminatedID)
		verdict = name + " has been executed by the village!"
		narration, err := call(ctx, e.callTimeout, func(ctx context.Context) (string, error) {
			return e.narrator.NightResult(ctx, name, true)
		})
		if err != nil {
			log.Printf("vote: game=%s execution narration failed: %v", g.Code, err)
		} else if narration != "" {
			verdict += " " + narration
		}
	case result.Tie:
		verdict = "The vote is tied. Nobody is executed."
	default:
		verdict = "Nobody received a vote. Nobody is executed."
	}

	var winner models.Winner
	e.update(g, func(s *models.State) {
		s.Messages = append(s.Messages,
			e.gmMessage("Vote results:\n"+strings.Join(lines, "\n"), models.KindSystem),
			e.gmMessage(verdict, models.KindNarration),
		)
		if result.EliminatedID != "" {
			eliminate(s, result.EliminatedID)
		}
		winner = CheckWinner(s.Players)
		if winner != models.WinnerNone {
			s.Winner = winner
			s.Phase = models.PhaseGameOver
			s.Loading = false
			s.LoadingMessage = ""
		}
	})
	if winner != models.WinnerNone {
		log.Printf("vote: game=%s over winner=%s", g.Code, winner)
		return nil
	}

	return e.beginNight(ctx, g)
}

// WerewolfKill resolves the night with the werewolf user's chosen victim
func (e *Engine) WerewolfKill(ctx context.Context, g *models.Game, targetID string) error {
	err := e.begin(g, "Resolving the night...", func(s *models.State) error {
		return guardKill(s, targetID)
	})
	if err != nil {
		return err
	}
	return e.resolveNight(ctx, g, targetID)
}

// SeerCheck reveals one player's allegiance to the seer user, then resolves the night
func (e *Engine) SeerCheck(ctx context.Context, g *models.Game, targetID string) error {
	err := e.begin(g, "Resolving the night...", func(s *models.State) error {
		if err := guardCheck(s, targetID); err != nil {
			return err
		}
		target, _ := s.Player(targetID)
		allegiance := "[Innocent]"
		if target.IsWerewolf() {
			allegiance = "[Werewolf]"
		}
		s.Messages = append(s.Messages, e.gmMessage(
			fmt.Sprintf("The crystal ball reveals the truth... %s is %s.", target.Name, allegiance),
			models.KindThought,
		))
		return nil
	})
	if err != nil {
		return err
	}
	return e.resolveNight(ctx, g, "")
}

// beginNight paints the night and either waits for the user's night action or
// resolves the night straight away
func (e *Engine) beginNight(ctx context.Context, g *models.Game) error {
	e.update(g, func(s *models.State) {
		s.LoadingMessage = "Night falls..."
	})

	snap := g.Snapshot()
	if winner := CheckWinner(snap.Players); winner != models.WinnerNone {
		e.update(g, func(s *models.State) {
			s.Winner = winner
			s.Phase = models.PhaseGameOver
			s.Loading = false
			s.LoadingMessage = ""
		})
		return nil
	}

	image := e.paint(ctx, Scene{Context: "Village at night, full moon, dark shadows, cinematic", Day: snap.Day, Night: true})

	waitForUser := false
	e.update(g, func(s *models.State) {
		if image != "" {
			s.Image = image
		}
		user, ok := s.User()
		waitForUser = ok && user.Alive && (user.Role == models.RoleWerewolf || user.Role == models.RoleSeer)
		if waitForUser {
			s.Phase = models.PhaseNightAction
			s.Loading = false
			s.LoadingMessage = ""
		}
	})
	if waitForUser {
		return nil
	}
	return e.resolveNight(ctx, g, "")
}

// resolveNight applies the werewolves' kill, narrates the dawn and checks the winner
func (e *Engine) resolveNight(ctx context.Context, g *models.Game, manualTarget string) error {
	e.update(g, func(s *models.State) {
		s.Phase = models.PhaseNightResult
		s.LoadingMessage = "Resolving the night..."
	})

	snap := g.Snapshot()
	target := manualTarget
	if target == "" {
		target = KillTarget(snap.Players, e.random)
	}
	victimName := ""
	if victim, ok := snap.Player(target); ok && victim.Alive {
		victimName = victim.Name
	}

	narration, err := call(ctx, e.callTimeout, func(ctx context.Context) (string, error) {
		return e.narrator.NightResult(ctx, victimName, false)
	})
	if err != nil || narration == "" {
		log.Printf("night: game=%s narration failed: %v", g.Code, err)
		narration = nightFallback(victimName)
	}

	image := e.paint(ctx, Scene{Context: "Morning after tragedy, village meeting", Day: snap.Day + 1})

	var winner models.Winner
	e.update(g, func(s *models.State) {
		if target != "" {
			eliminate(s, target)
		}
		s.Messages = append(s.Messages, e.gmMessage("Dawn breaks... "+narration, models.KindNarration))
		if image != "" {
			s.Image = image
		}
		s.Day++
		winner = CheckWinner(s.Players)
		s.Winner = winner
		if winner != models.WinnerNone {
			s.Phase = models.PhaseGameOver
		} else {
			s.Phase = models.PhaseDayDiscussion
		}
		s.Loading = false
		s.LoadingMessage = ""
	})
	log.Printf("night: game=%s victim=%q winner=%q", g.Code, victimName, winner)
	return nil
}

// begin atomically checks the busy flag, runs the phase guard and raises the
// loading flag. Nothing changes when the guard fails.
func (e *Engine) begin(g *models.Game, loadingMessage string, guard func(s *models.State) error) error {
	g.Lock()
	if g.State.Loading {
		g.Unlock()
		return ErrBusy
	}
	if err := guard(&g.State); err != nil {
		g.Unlock()
		return err
	}
	g.State.Loading = true
	g.State.LoadingMessage = loadingMessage
	g.UpdatedAt = e.now()
	g.Unlock()

	e.changed(g)
	return nil
}

// update applies fn under the game lock and notifies listeners
func (e *Engine) update(g *models.Game, fn func(s *models.State)) {
	g.Lock()
	fn(&g.State)
	g.UpdatedAt = e.now()
	g.Unlock()

	e.changed(g)
}

func (e *Engine) changed(g *models.Game) {
	if e.notify != nil {
		e.notify(g)
	}
}

// paint requests a scene image, returning "" when images are off or the call fails
func (e *Engine) paint(ctx context.Context, scene Scene) string {
	if e.skipImages {
		return ""
	}
	image, err := call(ctx, e.callTimeout, func(ctx context.Context) (string, error) {
		return e.narrator.SceneImage(ctx, scene)
	})
	if err != nil {
		log.Printf("scene image failed: day=%d night=%v err=%v", scene.Day, scene.Night, err)
		return ""
	}
	return image
}

func (e *Engine) gmMessage(content string, kind models.MessageKind) models.ChatMessage {
	return models.ChatMessage{
		ID:         e.newID(),
		SenderID:   models.GMSenderID,
		SenderName: models.GMSenderID,
		Content:    content,
		Timestamp:  e.now(),
		Kind:       kind,
	}
}

// roleNotice privately tells the user their role, and a werewolf user their pack
func (e *Engine) roleNotice(s *models.State) (models.ChatMessage, bool) {
	user, ok := s.User()
	if !ok {
		return models.ChatMessage{}, false
	}
	var content string
	switch user.Role {
	case models.RoleWerewolf:
		content = "You are a Werewolf. Your pack: " + strings.Join(Packmates(s.Players, user.ID), ", ") + ". Hide among the villagers."
	case models.RoleSeer:
		content = "You are the Seer. Each night you may learn one player's true allegiance."
	default:
		content = "You are a Villager. Find the werewolves before they find you."
	}
	return e.gmMessage(content, models.KindThought), true
}

func nightFallback(victimName string) string {
	if victimName == "" {
		return "The night passed quietly. Nobody died."
	}
	return victimName + " was found dead this morning."
}

// call runs fn with the per-call timeout
func call[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}
