package game

import (
	"errors"
	"testing"

	"github.com/aaronzipp/midnight-whispers/internal/models"
)

func TestCheck(t *testing.T) {
	e, notified := newTestEngine(&fakeNarrator{})

	tests := []struct {
		name   string
		role   models.Role
		phase  models.Phase
		action Action
		target string
		want   error
	}{
		{"say in discussion", models.RoleVillager, models.PhaseDayDiscussion, ActionSay, "", nil},
		{"say while voting", models.RoleVillager, models.PhaseDayVoting, ActionSay, "", ErrWrongPhase},
		{"start after setup", models.RoleVillager, models.PhaseDayDiscussion, ActionStart, "", ErrWrongPhase},
		{"open ballot", models.RoleVillager, models.PhaseDayDiscussion, ActionStartVoting, "", nil},
		{"vote npc", models.RoleVillager, models.PhaseDayVoting, ActionVote, "p2", nil},
		{"vote skip", models.RoleVillager, models.PhaseDayVoting, ActionVote, SkipVote, nil},
		{"vote self", models.RoleVillager, models.PhaseDayVoting, ActionVote, models.UserID, ErrInvalidTarget},
		{"vote stranger", models.RoleVillager, models.PhaseDayVoting, ActionVote, "nobody", ErrInvalidTarget},
		{"kill villager", models.RoleWerewolf, models.PhaseNightAction, ActionKill, "p6", nil},
		{"kill packmate", models.RoleWerewolf, models.PhaseNightAction, ActionKill, "p2", ErrInvalidTarget},
		{"kill as seer", models.RoleSeer, models.PhaseNightAction, ActionKill, "p6", ErrNotYourRole},
		{"check wolf", models.RoleSeer, models.PhaseNightAction, ActionCheck, "p2", nil},
		{"check by day", models.RoleSeer, models.PhaseDayDiscussion, ActionCheck, "p2", ErrWrongPhase},
		{"unknown action", models.RoleVillager, models.PhaseDayDiscussion, Action("dance"), "", ErrWrongPhase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tableWithUser(e, tt.role)
			g.State.Phase = tt.phase
			before := *notified

			err := e.Check(g, tt.action, tt.target)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if *notified != before || g.State.Loading {
				t.Fatal("check must not change the game")
			}
		})
	}
}

func TestCheckBusy(t *testing.T) {
	e, _ := newTestEngine(&fakeNarrator{})
	g := tableWithUser(e, models.RoleVillager)
	g.State.Loading = true

	if err := e.Check(g, ActionSay, ""); !errors.Is(err, ErrBusy) {
		t.Fatalf("got %v, want ErrBusy", err)
	}
}

func TestCheckDeadUser(t *testing.T) {
	e, _ := newTestEngine(&fakeNarrator{})
	g := tableWithUser(e, models.RoleWerewolf)
	g.State.Players[0].Alive = false

	if err := e.Check(g, ActionSay, ""); !errors.Is(err, ErrUserDead) {
		t.Fatalf("say: got %v, want ErrUserDead", err)
	}
	g.State.Phase = models.PhaseDayVoting
	if err := e.Check(g, ActionVote, "whatever"); err != nil {
		t.Fatalf("a dead user's ballot is ignored, got %v", err)
	}
	g.State.Phase = models.PhaseNightAction
	if err := e.Check(g, ActionKill, "p6"); !errors.Is(err, ErrUserDead) {
		t.Fatalf("kill: got %v, want ErrUserDead", err)
	}
}
