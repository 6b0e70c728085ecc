package events

import (
	"time"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeTurnStarted     = "turn.started"
	TypeShotFired       = "shot.fired"
	TypeShotRejected    = "shot.rejected"
	TypeShipSunk        = "ship.sunk"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published once both boards are generated
type GameStartedEvent struct {
	BaseEvent
	Mode       string `json:"mode"`
	NumPlayers int    `json:"num_players"`
	BoardSize  int    `json:"board_size"`
	FleetCells int    `json:"fleet_cells"`
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID, mode string, numPlayers, boardSize, fleetCells int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  newBase(TypeGameStarted, gameID),
		Mode:       mode,
		NumPlayers: numPlayers,
		BoardSize:  boardSize,
		FleetCells: fleetCells,
	}
}

// GameEndedEvent is published when one side has no ship cells left
type GameEndedEvent struct {
	BaseEvent
	Winner    int           `json:"winner"`
	Duration  time.Duration `json:"duration"`
	FinalTurn int           `json:"final_turn"`
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner int, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		Duration:  duration,
		FinalTurn: finalTurn,
	}
}

// TurnStartedEvent is published when the turn passes to a player
type TurnStartedEvent struct {
	BaseEvent
	Metadata   EventMetadata `json:"metadata"`
	TurnNumber int           `json:"turn"`
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, playerID, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, gameID),
		Metadata:   EventMetadata{PlayerID: playerID, Turn: turn},
		TurnNumber: turn,
	}
}

// ShotFiredEvent is published for every resolved shot
type ShotFiredEvent struct {
	BaseEvent
	Metadata  EventMetadata   `json:"metadata"`
	PlayerID  int             `json:"player_id"`
	TargetID  int             `json:"target_id"`
	Target    core.Coordinate `json:"target"`
	Outcome   core.Outcome    `json:"outcome"`
	Repeated  bool            `json:"repeated"`
	Remaining int             `json:"remaining"`
}

// NewShotFiredEvent creates a new ShotFiredEvent
func NewShotFiredEvent(gameID string, playerID, targetID int, result core.ShotResult, remaining, turn int) *ShotFiredEvent {
	return &ShotFiredEvent{
		BaseEvent: newBase(TypeShotFired, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, Turn: turn},
		PlayerID:  playerID,
		TargetID:  targetID,
		Target:    result.Target,
		Outcome:   result.Outcome,
		Repeated:  result.Repeated,
		Remaining: remaining,
	}
}

// ShotRejectedEvent is published when a shot fails validation
type ShotRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata   `json:"metadata"`
	PlayerID int             `json:"player_id"`
	Target   core.Coordinate `json:"target"`
	Reason   string          `json:"reason"`
}

// NewShotRejectedEvent creates a new ShotRejectedEvent
func NewShotRejectedEvent(gameID string, playerID int, target core.Coordinate, reason error, turn int) *ShotRejectedEvent {
	return &ShotRejectedEvent{
		BaseEvent: newBase(TypeShotRejected, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, Turn: turn},
		PlayerID:  playerID,
		Target:    target,
		Reason:    reason.Error(),
	}
}

// ShipSunkEvent is published when the last segment of a ship is hit
type ShipSunkEvent struct {
	BaseEvent
	Metadata EventMetadata `json:"metadata"`
	PlayerID int           `json:"player_id"`
	OwnerID  int           `json:"owner_id"`
	Size     int           `json:"size"`
	Name     string        `json:"name"`
	Afloat   int           `json:"afloat"`
}

// NewShipSunkEvent creates a new ShipSunkEvent
func NewShipSunkEvent(gameID string, playerID, ownerID, size int, name string, afloat, turn int) *ShipSunkEvent {
	return &ShipSunkEvent{
		BaseEvent: newBase(TypeShipSunk, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, Turn: turn},
		PlayerID:  playerID,
		OwnerID:   ownerID,
		Size:      size,
		Name:      name,
		Afloat:    afloat,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string `json:"from_phase"`
	ToPhase   string `json:"to_phase"`
	Reason    string `json:"reason"`
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
