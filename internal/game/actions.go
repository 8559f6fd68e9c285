package game

import "github.com/aaronzipp/midnight-whispers/internal/models"

// Action names a step the user can ask the engine to take
type Action string

const (
	ActionStart       Action = "start"
	ActionSay         Action = "say"
	ActionStartVoting Action = "vote-start"
	ActionVote        Action = "vote"
	ActionKill        Action = "kill"
	ActionCheck       Action = "check"
)

// Check reports whether action could begin now. It never changes the game.
func (e *Engine) Check(g *models.Game, action Action, target string) error {
	g.RLock()
	defer g.RUnlock()
	if g.State.Loading {
		return ErrBusy
	}
	s := &g.State
	switch action {
	case ActionStart:
		return guardStart(s)
	case ActionSay:
		return guardSay(s)
	case ActionStartVoting:
		return guardStartVoting(s)
	case ActionVote:
		return guardVote(s, target)
	case ActionKill:
		return guardKill(s, target)
	case ActionCheck:
		return guardCheck(s, target)
	}
	return ErrWrongPhase
}

func guardStart(s *models.State) error {
	if s.Phase != models.PhaseSetup {
		return ErrWrongPhase
	}
	return nil
}

func guardSay(s *models.State) error {
	if s.Phase != models.PhaseDayDiscussion {
		return ErrWrongPhase
	}
	if !s.UserAlive() {
		return ErrUserDead
	}
	return nil
}

func guardStartVoting(s *models.State) error {
	if s.Phase != models.PhaseDayDiscussion {
		return ErrWrongPhase
	}
	return nil
}

// guardVote accepts any target from a dead user, whose ballot is ignored
func guardVote(s *models.State, target string) error {
	if s.Phase != models.PhaseDayVoting {
		return ErrWrongPhase
	}
	if !s.UserAlive() || target == SkipVote {
		return nil
	}
	p, ok := s.Player(target)
	if !ok || !p.Alive || p.IsUser {
		return ErrInvalidTarget
	}
	return nil
}

func guardNight(s *models.State, role models.Role) error {
	if s.Phase != models.PhaseNightAction {
		return ErrWrongPhase
	}
	user, ok := s.User()
	if !ok || !user.Alive {
		return ErrUserDead
	}
	if user.Role != role {
		return ErrNotYourRole
	}
	return nil
}

func guardKill(s *models.State, target string) error {
	if err := guardNight(s, models.RoleWerewolf); err != nil {
		return err
	}
	p, ok := s.Player(target)
	if !ok || !p.Alive || p.IsUser || p.IsWerewolf() {
		return ErrInvalidTarget
	}
	return nil
}

func guardCheck(s *models.State, target string) error {
	if err := guardNight(s, models.RoleSeer); err != nil {
		return err
	}
	p, ok := s.Player(target)
	if !ok || !p.Alive || p.IsUser {
		return ErrInvalidTarget
	}
	return nil
}
