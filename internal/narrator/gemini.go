// Package narrator builds prompts from game state, sends them to Gemini and parses
// the replies. Parse failures degrade to empty results instead of errors.
package narrator

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultTextModel writes narration, dialogue and votes
	DefaultTextModel = "gemini-2.5-flash"
	// DefaultImageModel paints the scene illustrations
	DefaultImageModel = "gemini-2.5-flash-image"
	// DefaultLanguage is the language the model answers in
	DefaultLanguage = "Traditional Chinese"

	introFallback = "The game begins..."
	nightFallback = "Tonight..."
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

var npcSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"senderId": {Type: genai.TypeString},
			"content":  {Type: genai.TypeString},
		},
		Required: []string{"senderId", "content"},
	},
}

var voteSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"voterId":  {Type: genai.TypeString},
			"targetId": {Type: genai.TypeString},
			"reason":   {Type: genai.TypeString},
		},
		Required: []string{"voterId", "targetId", "reason"},
	},
}

// Config selects the models and reply language
type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
	Language   string
}

// request is one generate call
type request struct {
	Model  string
	Prompt string
	Schema *genai.Schema // JSON output when set
}

// generator sends a single request to the model
type generator interface {
	Generate(ctx context.Context, req request) (*genai.GenerateContentResponse, error)
}

type clientGenerator struct {
	client *genai.Client
}

func (c clientGenerator) Generate(ctx context.Context, req request) (*genai.GenerateContentResponse, error) {
	model := c.client.GenerativeModel(req.Model)
	if req.Schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = req.Schema
	}
	return model.GenerateContent(ctx, genai.Text(req.Prompt))
}

// Gemini narrates the game with the Gemini API
type Gemini struct {
	gen        generator
	client     *genai.Client
	textModel  string
	imageModel string
	language   string
}

// New connects to the Gemini API
func New(ctx context.Context, cfg Config) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	g := newGemini(clientGenerator{client: client}, cfg)
	g.client = client
	return g, nil
}

func newGemini(gen generator, cfg Config) *Gemini {
	g := &Gemini{
		gen:        gen,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		language:   cfg.Language,
	}
	if g.textModel == "" {
		g.textModel = DefaultTextModel
	}
	if g.imageModel == "" {
		g.imageModel = DefaultImageModel
	}
	if g.language == "" {
		g.language = DefaultLanguage
	}
	return g
}

// Close releases the underlying client
func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Intro writes the day-one opening narration
func (g *Gemini) Intro(ctx context.Context, players []models.Player) (string, error) {
	prompt, err := render(introPrompt, introData{Players: players, Language: g.language})
	if err != nil {
		return "", fmt.Errorf("render intro prompt: %w", err)
	}
	resp, err := g.gen.Generate(ctx, request{Model: g.textModel, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("generate intro: %w", err)
	}
	return textOr(resp, introFallback), nil
}

// SceneImage paints a scene and returns it as a data URL, "" when no image came back
func (g *Gemini) SceneImage(ctx context.Context, scene game.Scene) (string, error) {
	prompt, err := render(imagePrompt, scene)
	if err != nil {
		return "", fmt.Errorf("render image prompt: %w", err)
	}
	resp, err := g.gen.Generate(ctx, request{Model: g.imageModel, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	return imageDataURL(resp), nil
}

// NPCReplies picks one or two living NPCs to answer the user
func (g *Gemini) NPCReplies(ctx context.Context, players []models.Player, history []models.ChatMessage, userMessage string) ([]models.NPCLine, error) {
	if !hasAliveNPC(players) {
		return nil, nil
	}
	prompt, err := render(npcPrompt, npcData{
		Players:     players,
		History:     history,
		UserID:      models.UserID,
		UserMessage: userMessage,
		Language:    g.language,
	})
	if err != nil {
		return nil, fmt.Errorf("render npc prompt: %w", err)
	}
	resp, err := g.gen.Generate(ctx, request{Model: g.textModel, Prompt: prompt, Schema: npcSchema})
	if err != nil {
		return nil, fmt.Errorf("generate npc replies: %w", err)
	}
	return parseLines(textOf(resp)), nil
}

// Votes asks every living NPC for a ballot
func (g *Gemini) Votes(ctx context.Context, players []models.Player, history []models.ChatMessage) ([]models.VoteResult, error) {
	if !hasAliveNPC(players) {
		return nil, nil
	}
	prompt, err := render(votePrompt, voteData{Players: players, History: history, Language: g.language})
	if err != nil {
		return nil, fmt.Errorf("render vote prompt: %w", err)
	}
	resp, err := g.gen.Generate(ctx, request{Model: g.textModel, Prompt: prompt, Schema: voteSchema})
	if err != nil {
		return nil, fmt.Errorf("generate votes: %w", err)
	}
	return parseVotes(textOf(resp)), nil
}

// NightResult narrates a death, or a quiet night when victimName is empty
func (g *Gemini) NightResult(ctx context.Context, victimName string, byVote bool) (string, error) {
	prompt, err := render(nightPrompt, nightData{Victim: victimName, ByVote: byVote, Language: g.language})
	if err != nil {
		return "", fmt.Errorf("render night prompt: %w", err)
	}
	resp, err := g.gen.Generate(ctx, request{Model: g.textModel, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("generate night result: %w", err)
	}
	return textOr(resp, nightFallback), nil
}

func hasAliveNPC(players []models.Player) bool {
	for _, p := range players {
		if p.Alive && !p.IsUser {
			return true
		}
	}
	return false
}

// textOf joins the text parts of the first candidate
func textOf(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}

func textOr(resp *genai.GenerateContentResponse, fallback string) string {
	if text := strings.TrimSpace(textOf(resp)); text != "" {
		return text
	}
	return fallback
}

// imageDataURL returns the first inline image of the first candidate as a data URL
func imageDataURL(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		blob, ok := part.(genai.Blob)
		if !ok || len(blob.Data) == 0 {
			continue
		}
		return "data:" + blob.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(blob.Data)
	}
	if debug {
		log.Printf("gemini: image response had no inline data")
	}
	return ""
}
