package game

import (
	"fmt"

	"github.com/aaronzipp/midnight-whispers/internal/models"
)

// TallyResult represents the outcome of vote counting
type TallyResult struct {
	Counts       map[string]int
	EliminatedID string
	Tie          bool
}

// RoleDeck returns the fixed role distribution for a full table
func RoleDeck() []models.Role {
	deck := make([]models.Role, 0, TotalPlayers)
	for i := 0; i < WerewolfCount; i++ {
		deck = append(deck, models.RoleWerewolf)
	}
	for i := 0; i < SeerCount; i++ {
		deck = append(deck, models.RoleSeer)
	}
	for i := 0; i < VillagerCount; i++ {
		deck = append(deck, models.RoleVillager)
	}
	return deck
}

// AssignRoles deals the shuffled role deck to the roster, one role per seat
func AssignRoles(players []models.Player, rnd Random) ([]models.Player, error) {
	if len(players) != TotalPlayers {
		return nil, fmt.Errorf("assign roles to %d players: %w", len(players), ErrRosterSize)
	}
	deck := RoleDeck()
	rnd.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	dealt := make([]models.Player, len(players))
	for i, p := range players {
		p.Role = deck[i]
		dealt[i] = p
	}
	return dealt, nil
}

// CountAlive returns the living werewolves and living non-werewolves
func CountAlive(players []models.Player) (wolves, others int) {
	for _, p := range players {
		if !p.Alive {
			continue
		}
		if p.IsWerewolf() {
			wolves++
		} else {
			others++
		}
	}
	return wolves, others
}

// CheckWinner decides whether the game is over
func CheckWinner(players []models.Player) models.Winner {
	wolves, others := CountAlive(players)
	switch {
	case wolves == 0:
		return models.WinnerVillagers
	case wolves >= others:
		return models.WinnerWerewolves
	default:
		return models.WinnerNone
	}
}

// ValidVotes drops ballots from dead, unknown, user or repeat voters and ballots for
// dead or unknown targets. Abstentions pass through.
func ValidVotes(players []models.Player, votes []models.VoteResult) []models.VoteResult {
	alive := make(map[string]models.Player, len(players))
	for _, p := range players {
		if p.Alive {
			alive[p.ID] = p
		}
	}

	seen := make(map[string]bool, len(votes))
	valid := make([]models.VoteResult, 0, len(votes))
	for _, v := range votes {
		voter, ok := alive[v.VoterID]
		if !ok || voter.IsUser || seen[v.VoterID] {
			continue
		}
		if v.TargetID != SkipVote {
			if _, ok := alive[v.TargetID]; !ok {
				continue
			}
		}
		seen[v.VoterID] = true
		valid = append(valid, v)
	}
	return valid
}

// Tally counts ballots. A tied top count or no counted ballots eliminates nobody.
func Tally(votes []models.VoteResult) TallyResult {
	counts := make(map[string]int)
	for _, v := range votes {
		if v.TargetID == "" || v.TargetID == SkipVote {
			continue
		}
		counts[v.TargetID]++
	}

	maxVotes := 0
	var top []string
	for id, count := range counts {
		if count > maxVotes {
			maxVotes = count
			top = []string{id}
		} else if count == maxVotes {
			top = append(top, id)
		}
	}

	result := TallyResult{
		Counts: counts,
		Tie:    len(top) > 1,
	}
	if len(top) == 1 {
		result.EliminatedID = top[0]
	}
	return result
}

// KillTarget picks the werewolves' victim uniformly among living non-werewolves.
// It returns "" when no werewolf is alive or nobody is left to kill.
func KillTarget(players []models.Player, rnd Random) string {
	wolves, _ := CountAlive(players)
	if wolves == 0 {
		return ""
	}
	var targets []string
	for _, p := range players {
		if p.Alive && !p.IsWerewolf() {
			targets = append(targets, p.ID)
		}
	}
	if len(targets) == 0 {
		return ""
	}
	return targets[rnd.Intn(len(targets))]
}

// Packmates returns the names of the other werewolves
func Packmates(players []models.Player, selfID string) []string {
	var names []string
	for _, p := range players {
		if p.IsWerewolf() && p.ID != selfID {
			names = append(names, p.Name)
		}
	}
	return names
}

// eliminate marks a player dead and returns their name
func eliminate(s *models.State, id string) (string, bool) {
	p, ok := s.Player(id)
	if !ok || !p.Alive {
		return "", false
	}
	p.Alive = false
	return p.Name, true
}
