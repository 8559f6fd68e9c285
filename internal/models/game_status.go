package models

// Phase represents the current phase of the game
type Phase string

const (
	PhaseSetup         Phase = "setup"
	PhaseDayIntro      Phase = "day_intro"
	PhaseDayDiscussion Phase = "day_discussion"
	PhaseDayVoting     Phase = "day_voting"
	PhaseNightAction   Phase = "night_action"
	PhaseNightResult   Phase = "night_result"
	PhaseGameOver      Phase = "game_over"
)

// IsNight reports whether the phase takes place after dark
func (p Phase) IsNight() bool {
	return p == PhaseNightAction || p == PhaseNightResult
}

// Winner names the side that won the game, empty while the game continues
type Winner string

const (
	WinnerNone       Winner = ""
	WinnerVillagers  Winner = "villagers"
	WinnerWerewolves Winner = "werewolves"
)
