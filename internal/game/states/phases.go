package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseInitializing - Game object creation
	PhaseInitializing GamePhase = iota

	// PhasePlacing - Fleets are being laid out on both boards
	PhasePlacing

	// PhaseRunning - Players are exchanging shots
	PhaseRunning

	// PhaseEnded - One fleet is gone
	PhaseEnded

	// PhaseError - Placement or setup failed
	PhaseError

	// PhaseReset - Clear the match before a rematch
	PhaseReset
)

var phaseNames = map[GamePhase]string{
	PhaseInitializing: "Initializing",
	PhasePlacing:      "Placing",
	PhaseRunning:      "Running",
	PhaseEnded:        "Ended",
	PhaseError:        "Error",
	PhaseReset:        "Reset",
}

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", p)
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// CanReceiveActions returns true if shots may be fired in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhasePlacing, PhaseError}
	case PhasePlacing:
		return []GamePhase{PhaseRunning, PhaseError}
	case PhaseRunning:
		return []GamePhase{PhaseEnded, PhaseError}
	case PhaseEnded, PhaseError:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseInitializing}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase. Unknown names map to PhaseInitializing.
func ParsePhase(s string) GamePhase {
	for phase, name := range phaseNames {
		if name == s {
			return phase
		}
	}
	return PhaseInitializing
}
