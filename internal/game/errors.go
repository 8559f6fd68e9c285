package game

import "errors"

var (
	// ErrBusy is returned while the narrator is still working on the previous step.
	ErrBusy = errors.New("game is busy")
	// ErrWrongPhase is returned for an action that does not belong to the current phase.
	ErrWrongPhase = errors.New("action not allowed in current phase")
	// ErrInvalidTarget is returned when a vote or night action names an ineligible player.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrEmptyMessage is returned for a blank chat line.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrUserDead is returned when a dead user tries to act.
	ErrUserDead = errors.New("user is dead")
	// ErrNotYourRole is returned when the user lacks the role for a night action.
	ErrNotYourRole = errors.New("user does not hold this role")
	// ErrRosterSize is returned when the roster does not match the role deck.
	ErrRosterSize = errors.New("roster size does not match role deck")
)
