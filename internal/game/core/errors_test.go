package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapActionError(t *testing.T) {
	tests := []struct {
		name     string
		action   Action
		err      error
		expected string
		isNil    bool
	}{
		{
			name:   "nil error returns nil",
			action: &ShotAction{PlayerID: 1, Target: NewCoordinate(0, 0)},
			err:    nil,
			isNil:  true,
		},
		{
			name:     "shot action with coordinates",
			action:   &ShotAction{PlayerID: 1, Target: NewCoordinate(5, 3)},
			err:      ErrOutOfBounds,
			expected: "player 1: shot at (5,3): coordinate out of bounds",
		},
		{
			name:     "generic action fallback",
			action:   nil,
			err:      ErrGameOver,
			expected: "player action: game is over",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapActionError(tt.action, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapGameStateError(t *testing.T) {
	assert.Nil(t, WrapGameStateError(3, "Running", nil))

	wrapped := WrapGameStateError(12, "Running", ErrNotYourTurn)
	require.NotNil(t, wrapped)
	assert.Equal(t, "turn 12 (Running phase): not this player's turn", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrNotYourTurn)
}
