package game

import "time"

const (
	// TotalPlayers is the table size the role deck is built for
	TotalPlayers = 10

	// WerewolfCount is the number of werewolves dealt at game start
	WerewolfCount = 3

	// SeerCount is the number of seers dealt at game start
	SeerCount = 1

	// VillagerCount is the number of plain villagers dealt at game start
	VillagerCount = TotalPlayers - WerewolfCount - SeerCount

	// HistoryWindow is how many trailing chat messages the narrator sees
	HistoryWindow = 15

	// MaxMessageLength caps a single user chat line
	MaxMessageLength = 500

	// SkipVote is the ballot target for an abstention
	SkipVote = "skip"

	// DefaultCallTimeout bounds a single narrator call
	DefaultCallTimeout = 90 * time.Second

	// SSEBufferSize is the buffer size for SSE message channels
	SSEBufferSize = 16

	// SSETimeoutSeconds is the timeout for sending messages to SSE clients
	SSETimeoutSeconds = 1

	// RoomCodeLength is the length of generated game codes
	RoomCodeLength = 6

	// RoomCodeChars are the characters used for generating game codes (excluding ambiguous chars)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)
