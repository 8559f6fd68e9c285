package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.CallTimeout != 90*time.Second {
		t.Errorf("call timeout = %s", cfg.CallTimeout)
	}
	if cfg.GameTTL != 6*time.Hour {
		t.Errorf("game ttl = %s", cfg.GameTTL)
	}
	if cfg.TextModel != "gemini-2.5-flash" || cfg.ImageModel != "gemini-2.5-flash-image" {
		t.Errorf("models = %q %q", cfg.TextModel, cfg.ImageModel)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("WEREWOLF_ADDR", ":9000")
	t.Setenv("WEREWOLF_CALL_TIMEOUT", "30s")

	cfg, err := Load([]string{"-addr", ":7000", "-skip-images"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("flag should win, addr = %q", cfg.Addr)
	}
	if cfg.CallTimeout != 30*time.Second {
		t.Errorf("env should apply, call timeout = %s", cfg.CallTimeout)
	}
	if !cfg.SkipImages {
		t.Error("skip-images flag not applied")
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("WEREWOLF_LANGUAGE=English\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides variables already set, so clear it for this test
	t.Setenv("WEREWOLF_LANGUAGE", "")
	os.Unsetenv("WEREWOLF_LANGUAGE")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "English" {
		t.Errorf("language = %q", cfg.Language)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("WEREWOLF_CALL_TIMEOUT", "soon")

	_, err := Load(nil)
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestLoadRosterDefault(t *testing.T) {
	players, err := LoadRoster("")
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if len(players) != game.TotalPlayers {
		t.Fatalf("got %d players", len(players))
	}
	if !players[0].IsUser || players[0].ID != models.UserID {
		t.Errorf("first player should be the user, got %+v", players[0])
	}
	if players[9].ID != "p10" || players[9].Bio == "" {
		t.Errorf("unexpected last player %+v", players[9])
	}
}

func TestLoadRosterFile(t *testing.T) {
	var b strings.Builder
	b.WriteString("players:\n  - {id: user, name: Me, user: true}\n")
	for i := 2; i <= 10; i++ {
		b.WriteString("  - {id: n")
		b.WriteString(string(rune('0' + i%10)))
		b.WriteString(", name: NPC}\n")
	}
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatal(err)
	}

	players, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if players[0].Name != "Me" || players[1].ID != "n2" || players[9].ID != "n0" {
		t.Errorf("unexpected roster %+v", players)
	}
}

func TestBuildRosterValidation(t *testing.T) {
	valid := func() []rosterEntry {
		entries := []rosterEntry{{ID: models.UserID, Name: "Me", User: true}}
		for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
			entries = append(entries, rosterEntry{ID: id, Name: strings.ToUpper(id)})
		}
		return entries
	}

	tests := []struct {
		name   string
		mutate func([]rosterEntry) []rosterEntry
		want   string
	}{
		{"too few", func(e []rosterEntry) []rosterEntry { return e[:9] }, "roster has 9 players"},
		{"duplicate", func(e []rosterEntry) []rosterEntry { e[2].ID = "a"; return e }, "duplicate"},
		{"no user", func(e []rosterEntry) []rosterEntry { e[0].User = false; e[0].ID = "z"; return e }, "exactly one user"},
		{"user id", func(e []rosterEntry) []rosterEntry { e[0].ID = "me"; return e }, "must be"},
		{"reserved", func(e []rosterEntry) []rosterEntry {
			e[0].ID = "z"
			e[0].User = false
			e[1].ID = models.UserID
			return e
		}, "reserved"},
		{"blank name", func(e []rosterEntry) []rosterEntry { e[3].Name = " "; return e }, "needs an id and a name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildRoster(tt.mutate(valid()))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q error, got %v", tt.want, err)
			}
		})
	}

	if _, err := buildRoster(valid()[:3]); !errors.Is(err, game.ErrRosterSize) {
		t.Errorf("size errors should wrap ErrRosterSize, got %v", err)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
