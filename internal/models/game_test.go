package models

import (
	"testing"
	"time"
)

func testRoster() []Player {
	return []Player{
		{ID: UserID, Name: "You", IsUser: true},
		{ID: "p2", Name: "Elder"},
		{ID: "p3", Name: "Smith"},
	}
}

func TestNewGameStartsInSetup(t *testing.T) {
	g := NewGame("ABC123", testRoster(), time.Unix(100, 0))

	if g.State.Phase != PhaseSetup {
		t.Fatalf("expected setup phase, got %s", g.State.Phase)
	}
	if g.State.Day != 1 {
		t.Fatalf("expected day 1, got %d", g.State.Day)
	}
	for _, p := range g.State.Players {
		if !p.Alive {
			t.Fatalf("expected %s to start alive", p.ID)
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := NewGame("ABC123", testRoster(), time.Now())
	snap := g.Snapshot()
	snap.Players[1].Alive = false
	snap.Messages = append(snap.Messages, ChatMessage{ID: "m1"})

	if !g.State.Players[1].Alive {
		t.Fatal("snapshot mutation leaked into game state")
	}
	if len(g.State.Messages) != 0 {
		t.Fatal("snapshot append leaked into game state")
	}
}

func TestStateLookups(t *testing.T) {
	g := NewGame("ABC123", testRoster(), time.Now())
	s := &g.State
	s.Players[2].Alive = false

	if u, ok := s.User(); !ok || u.ID != UserID {
		t.Fatalf("expected user lookup to find %q", UserID)
	}
	if got := len(s.AlivePlayers()); got != 2 {
		t.Fatalf("expected 2 alive players, got %d", got)
	}
	npcs := s.AliveNPCs()
	if len(npcs) != 1 || npcs[0].ID != "p2" {
		t.Fatalf("expected only p2 alive among NPCs, got %+v", npcs)
	}
	if got := s.NameOf("p3"); got != "Smith" {
		t.Fatalf("expected Smith, got %q", got)
	}
	if got := s.NameOf("nobody"); got != "nobody" {
		t.Fatalf("expected unknown id echoed, got %q", got)
	}
}
