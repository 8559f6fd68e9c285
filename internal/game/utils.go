package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"

	"github.com/aaronzipp/midnight-whispers/internal/models"
)

// Random is the source of chance used for dealing roles and picking night victims
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRandom uses the auto-seeded, goroutine-safe top-level math/rand functions
type globalRandom struct{}

func (globalRandom) Intn(n int) int                     { return rand.Intn(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// CodeChecker reports whether a game code is taken
type CodeChecker interface {
	Exists(code string) bool
}

// GenerateRoomCode creates a random game code
func GenerateRoomCode() string {
	code := make([]byte, RoomCodeLength)
	for i := 0; i < RoomCodeLength; i++ {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(RoomCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = RoomCodeChars[rand.Intn(len(RoomCodeChars))]
			continue
		}
		code[i] = RoomCodeChars[n.Int64()]
	}
	return string(code)
}

// GetUniqueRoomCode generates a game code not yet held by the store
func GetUniqueRoomCode(codes CodeChecker) string {
	for {
		code := GenerateRoomCode()
		if !codes.Exists(code) {
			return code
		}
	}
}

// PhasePathFor returns the URL path for a given game phase
func PhasePathFor(code string, phase models.Phase) string {
	switch phase {
	case models.PhaseSetup:
		return "/game/" + code + "/setup"
	case models.PhaseGameOver:
		return "/game/" + code + "/results"
	default:
		return "/game/" + code + "/play"
	}
}
