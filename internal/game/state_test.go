package game

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/aaronzipp/midnight-whispers/internal/models"
)

func fullRoster() []models.Player {
	players := []models.Player{{ID: models.UserID, Name: "You", IsUser: true, Alive: true}}
	names := []string{"Elder", "Smith", "Baker", "Hood", "Hunter", "Drunk", "Widow", "Tommy", "Merlin"}
	for i, name := range names {
		players = append(players, models.Player{ID: fmt.Sprintf("p%d", i+2), Name: name, Alive: true})
	}
	return players
}

func TestAssignRolesDistribution(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		dealt, err := AssignRoles(fullRoster(), rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: assign roles: %v", seed, err)
		}
		if len(dealt) != TotalPlayers {
			t.Fatalf("seed %d: expected %d players, got %d", seed, TotalPlayers, len(dealt))
		}
		counts := make(map[models.Role]int)
		for i, p := range dealt {
			if p.ID != fullRoster()[i].ID {
				t.Fatalf("seed %d: seat %d changed player", seed, i)
			}
			counts[p.Role]++
		}
		if counts[models.RoleWerewolf] != 3 || counts[models.RoleSeer] != 1 || counts[models.RoleVillager] != 6 {
			t.Fatalf("seed %d: unexpected role counts %v", seed, counts)
		}
	}
}

func TestAssignRolesRejectsWrongSize(t *testing.T) {
	_, err := AssignRoles(fullRoster()[:9], rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrRosterSize) {
		t.Fatalf("expected ErrRosterSize, got %v", err)
	}
}

func TestCheckWinner(t *testing.T) {
	tests := []struct {
		name   string
		wolves int
		others int
		want   models.Winner
	}{
		{name: "no wolves left", wolves: 0, others: 4, want: models.WinnerVillagers},
		{name: "wolves equal others", wolves: 2, others: 2, want: models.WinnerWerewolves},
		{name: "wolves outnumber", wolves: 3, others: 1, want: models.WinnerWerewolves},
		{name: "game continues", wolves: 1, others: 3, want: models.WinnerNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var players []models.Player
			for i := 0; i < tt.wolves; i++ {
				players = append(players, models.Player{Role: models.RoleWerewolf, Alive: true})
			}
			for i := 0; i < tt.others; i++ {
				players = append(players, models.Player{Role: models.RoleVillager, Alive: true})
			}
			// dead players never count
			players = append(players, models.Player{Role: models.RoleWerewolf}, models.Player{Role: models.RoleSeer})
			if got := CheckWinner(players); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTally(t *testing.T) {
	tests := []struct {
		name       string
		votes      []models.VoteResult
		eliminated string
		tie        bool
	}{
		{
			name:       "clear majority",
			votes:      []models.VoteResult{{VoterID: "a", TargetID: "x"}, {VoterID: "b", TargetID: "x"}, {VoterID: "c", TargetID: "y"}},
			eliminated: "x",
		},
		{
			name:  "tied top count",
			votes: []models.VoteResult{{VoterID: "a", TargetID: "x"}, {VoterID: "b", TargetID: "y"}, {VoterID: "c", TargetID: "x"}, {VoterID: "d", TargetID: "y"}},
			tie:   true,
		},
		{
			name:       "abstentions are not counted",
			votes:      []models.VoteResult{{VoterID: "a", TargetID: SkipVote}, {VoterID: "b", TargetID: SkipVote}, {VoterID: "c", TargetID: "y"}},
			eliminated: "y",
		},
		{
			name: "no ballots",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tally(tt.votes)
			if got.EliminatedID != tt.eliminated || got.Tie != tt.tie {
				t.Fatalf("expected eliminated=%q tie=%v, got eliminated=%q tie=%v", tt.eliminated, tt.tie, got.EliminatedID, got.Tie)
			}
			if _, ok := got.Counts[SkipVote]; ok {
				t.Fatal("skip must not be counted as a candidate")
			}
		})
	}
}

func TestValidVotes(t *testing.T) {
	players := []models.Player{
		{ID: models.UserID, IsUser: true, Alive: true},
		{ID: "p2", Alive: true},
		{ID: "p3", Alive: true},
		{ID: "p4"},
	}
	votes := []models.VoteResult{
		{VoterID: "p2", TargetID: "p3"},
		{VoterID: "p2", TargetID: models.UserID}, // second ballot
		{VoterID: "p4", TargetID: "p2"},          // dead voter
		{VoterID: models.UserID, TargetID: "p2"}, // user votes separately
		{VoterID: "p3", TargetID: "p4"},          // dead target
		{VoterID: "ghost", TargetID: "p2"},       // unknown voter
		{VoterID: "p3", TargetID: SkipVote},
	}

	got := ValidVotes(players, votes)
	if len(got) != 2 {
		t.Fatalf("expected 2 valid ballots, got %+v", got)
	}
	if got[0].VoterID != "p2" || got[0].TargetID != "p3" {
		t.Fatalf("unexpected first ballot %+v", got[0])
	}
	if got[1].VoterID != "p3" || got[1].TargetID != SkipVote {
		t.Fatalf("unexpected second ballot %+v", got[1])
	}
}

func TestKillTarget(t *testing.T) {
	players := []models.Player{
		{ID: "w1", Role: models.RoleWerewolf, Alive: true},
		{ID: "v1", Role: models.RoleVillager},
		{ID: "v2", Role: models.RoleVillager, Alive: true},
		{ID: "s1", Role: models.RoleSeer, Alive: true},
	}
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		id := KillTarget(players, rnd)
		if id != "v2" && id != "s1" {
			t.Fatalf("expected a living non-werewolf, got %q", id)
		}
	}

	players[0].Alive = false
	if id := KillTarget(players, rnd); id != "" {
		t.Fatalf("expected no target without a living werewolf, got %q", id)
	}
}

func TestPhasePathFor(t *testing.T) {
	if got := PhasePathFor("ABC", models.PhaseSetup); got != "/game/ABC/setup" {
		t.Fatalf("unexpected setup path %q", got)
	}
	if got := PhasePathFor("ABC", models.PhaseNightAction); got != "/game/ABC/play" {
		t.Fatalf("unexpected play path %q", got)
	}
	if got := PhasePathFor("ABC", models.PhaseGameOver); got != "/game/ABC/results" {
		t.Fatalf("unexpected results path %q", got)
	}
}

type codeSet map[string]bool

func (c codeSet) Exists(code string) bool { return c[code] }

func TestGetUniqueRoomCode(t *testing.T) {
	taken := codeSet{}
	for i := 0; i < 20; i++ {
		code := GetUniqueRoomCode(taken)
		if len(code) != RoomCodeLength {
			t.Fatalf("expected %d chars, got %q", RoomCodeLength, code)
		}
		if taken[code] {
			t.Fatalf("code %q handed out twice", code)
		}
		taken[code] = true
	}
}
