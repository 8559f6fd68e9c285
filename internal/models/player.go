package models

// Role is a player's secret role, assigned once at game start
type Role string

const (
	RoleWerewolf Role = "werewolf"
	RoleVillager Role = "villager"
	RoleSeer     Role = "seer"
)

// UserID is the player ID reserved for the human player
const UserID = "user"

// Player represents a seat at the table, user or NPC
type Player struct {
	ID     string
	Name   string
	Role   Role
	Alive  bool
	IsUser bool
	Bio    string
}

// IsWerewolf reports whether the player belongs to the pack
func (p Player) IsWerewolf() bool {
	return p.Role == RoleWerewolf
}

// VoteResult is a single ballot from one voting round
type VoteResult struct {
	VoterID  string `json:"voterId"`
	TargetID string `json:"targetId"`
	Reason   string `json:"reason"`
}

// NPCLine is one line of NPC dialogue as returned by the narrator
type NPCLine struct {
	SenderID string `json:"senderId"`
	Content  string `json:"content"`
}
