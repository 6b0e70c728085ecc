package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/events"
)

// State represents a game state with lifecycle callbacks
type State interface {
	// Phase returns the GamePhase this state represents
	Phase() GamePhase

	// Enter is called when transitioning into this state
	Enter(ctx *GameContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *GameContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *GameContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages game state transitions and history
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   GamePhase
	states         map[GamePhase]State
	context        *GameContext
	history        []Transition
	maxHistorySize int
	eventBus       events.Publisher
}

// NewStateMachine creates a new state machine. eventBus may be nil.
func NewStateMachine(ctx *GameContext, eventBus events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseInitializing,
		states:         make(map[GamePhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 8),
		maxHistorySize: 100,
		eventBus:       eventBus,
	}

	sm.RegisterState(NewInitializingState())
	sm.RegisterState(NewPlacingState())
	sm.RegisterState(NewRunningState())
	sm.RegisterState(NewEndedState())
	sm.RegisterState(NewErrorState())
	sm.RegisterState(NewResetState())

	return sm
}

// RegisterState registers a state implementation, replacing any existing one for its phase
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current game phase
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase GamePhase, reason string) error {
	sm.mu.Lock()
	evt, err := sm.transitionLocked(targetPhase, reason)
	sm.mu.Unlock()

	// Published outside the lock so handlers may query the machine.
	if evt != nil {
		sm.publish(evt)
	}
	return err
}

func (sm *StateMachine) transitionLocked(targetPhase GamePhase, reason string) (events.Event, error) {
	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return nil, fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]
	if !hasTargetState {
		return nil, fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return nil, fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return nil, fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return events.NewStateTransitionEvent(
		sm.context.GameID,
		previousPhase.String(),
		targetPhase.String(),
		reason,
	), nil
}

func (sm *StateMachine) publish(evt events.Event) {
	if sm.eventBus != nil {
		sm.eventBus.Publish(evt)
	}
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the game context
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}

// Reset walks a finished or failed game through PhaseReset back to
// PhaseInitializing and clears the history.
func (sm *StateMachine) Reset() error {
	sm.mu.Lock()
	if !sm.currentPhase.IsTerminal() {
		phase := sm.currentPhase
		sm.mu.Unlock()
		return fmt.Errorf("cannot reset from %s", phase)
	}

	var pending []events.Event
	for _, target := range []GamePhase{PhaseReset, PhaseInitializing} {
		evt, err := sm.transitionLocked(target, "reset requested")
		if err != nil {
			sm.mu.Unlock()
			for _, e := range pending {
				sm.publish(e)
			}
			return err
		}
		pending = append(pending, evt)
	}
	sm.history = sm.history[:0]
	sm.mu.Unlock()

	for _, e := range pending {
		sm.publish(e)
	}
	return nil
}
