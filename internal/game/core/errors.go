package core

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds        = errors.New("coordinate out of bounds")
	ErrPlacementExhausted = errors.New("ship placement attempts exhausted")
	ErrInvalidCatalog     = errors.New("invalid ship catalog")
	ErrGameOver           = errors.New("game is over")
	ErrInvalidPlayer      = errors.New("invalid player ID")
	ErrNotYourTurn        = errors.New("not this player's turn")
	ErrUnknownShip        = errors.New("no ship at coordinate")
)

// WrapActionError annotates err with the player and target of the action.
func WrapActionError(action Action, err error) error {
	if err == nil {
		return nil
	}
	if shot, ok := action.(*ShotAction); ok && shot != nil {
		return fmt.Errorf("player %d: shot at %s: %w", shot.PlayerID, shot.Target, err)
	}
	return fmt.Errorf("player action: %w", err)
}

// WrapGameStateError annotates err with the turn and the phase it happened in.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("turn %d (%s phase): %w", turn, phase, err)
}
