package store

import (
	"testing"
	"time"

	"github.com/aaronzipp/midnight-whispers/internal/models"
)

func TestGameStoreCRUD(t *testing.T) {
	s := NewGameStore()
	g := models.NewGame("ABC123", nil, time.Now())

	if s.Exists("ABC123") {
		t.Fatal("empty store should not contain game")
	}
	s.Set("ABC123", g)
	got, ok := s.Get("ABC123")
	if !ok || got != g {
		t.Fatalf("Get returned %v, %v", got, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	s.Delete("ABC123")
	if _, ok := s.Get("ABC123"); ok {
		t.Fatal("game should be gone after Delete")
	}
}

func TestGameStorePrune(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewGameStore()

	stale := models.NewGame("STALE1", nil, now.Add(-7*time.Hour))
	fresh := models.NewGame("FRESH1", nil, now.Add(-time.Minute))
	watched := models.NewGame("WATCH1", nil, now.Add(-7*time.Hour))
	watched.AddSSEClient(make(chan models.SSEMessage, 1), "tab")
	busy := models.NewGame("BUSY01", nil, now.Add(-7*time.Hour))
	busy.State.Loading = true

	for _, g := range []*models.Game{stale, fresh, watched, busy} {
		s.Set(g.Code, g)
	}

	removed := s.Prune(now.Add(-6 * time.Hour))
	if len(removed) != 1 || removed[0] != "STALE1" {
		t.Fatalf("removed = %v, want [STALE1]", removed)
	}
	for _, code := range []string{"FRESH1", "WATCH1", "BUSY01"} {
		if !s.Exists(code) {
			t.Errorf("%s should survive pruning", code)
		}
	}
}
