package core

// ActionType represents the type of action
type ActionType int

const (
	ActionShot ActionType = iota
)

func (t ActionType) String() string {
	switch t {
	case ActionShot:
		return "shot"
	default:
		return "unknown"
	}
}

// Action represents a player action
type Action interface {
	GetPlayerID() int
	GetType() ActionType
	Validate(b *Board, playerID int) error
}

// ShotAction is a player firing at one cell of the opposing board
type ShotAction struct {
	PlayerID int
	Target   Coordinate
}

func (s *ShotAction) GetPlayerID() int    { return s.PlayerID }
func (s *ShotAction) GetType() ActionType { return ActionShot }

// Validate checks the shot belongs to playerID and lands on the board
func (s *ShotAction) Validate(b *Board, playerID int) error {
	if s.PlayerID != playerID {
		return ErrInvalidPlayer
	}
	if !b.InBounds(s.Target) {
		return ErrOutOfBounds
	}
	return nil
}
