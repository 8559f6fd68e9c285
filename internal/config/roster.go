package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/models"
	"github.com/spf13/viper"
)

//go:embed roster.yaml
var defaultRoster []byte

type rosterEntry struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
	Bio  string `mapstructure:"bio"`
	User bool   `mapstructure:"user"`
}

// LoadRoster reads the roster from path, or the built-in villagers when path is empty
func LoadRoster(path string) ([]models.Player, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path == "" {
		if err := v.ReadConfig(bytes.NewReader(defaultRoster)); err != nil {
			return nil, fmt.Errorf("read default roster: %w", err)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read roster %s: %w", path, err)
		}
	}

	var entries []rosterEntry
	if err := v.UnmarshalKey("players", &entries); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return buildRoster(entries)
}

func buildRoster(entries []rosterEntry) ([]models.Player, error) {
	if len(entries) != game.TotalPlayers {
		return nil, fmt.Errorf("roster has %d players: %w", len(entries), game.ErrRosterSize)
	}

	seen := make(map[string]bool, len(entries))
	users := 0
	players := make([]models.Player, 0, len(entries))
	for i, e := range entries {
		id := strings.TrimSpace(e.ID)
		name := strings.TrimSpace(e.Name)
		if id == "" || name == "" {
			return nil, fmt.Errorf("roster entry %d needs an id and a name", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate roster id %q", id)
		}
		seen[id] = true
		if e.User {
			users++
			if id != models.UserID {
				return nil, fmt.Errorf("the user's roster id must be %q, got %q", models.UserID, id)
			}
		} else if id == models.UserID {
			return nil, fmt.Errorf("roster id %q is reserved for the user", models.UserID)
		}
		players = append(players, models.Player{
			ID:     id,
			Name:   name,
			Bio:    strings.TrimSpace(e.Bio),
			IsUser: e.User,
			Alive:  true,
		})
	}
	if users != 1 {
		return nil, fmt.Errorf("roster needs exactly one user, found %d", users)
	}
	return players, nil
}
