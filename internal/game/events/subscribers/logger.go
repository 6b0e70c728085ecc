package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)
	if ls.logLevel == zerolog.NoLevel || ls.logLevel == zerolog.Disabled {
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Str("mode", e.Mode).
			Int("num_players", e.NumPlayers).
			Int("board_size", e.BoardSize).
			Int("fleet_cells", e.FleetCells)

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", e.Winner).
			Dur("duration", e.Duration).
			Int("final_turn", e.FinalTurn)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("player_id", e.Metadata.PlayerID)

	case *events.ShotFiredEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("target_id", e.TargetID).
			Int("row", e.Target.Row).
			Int("col", e.Target.Col).
			Str("outcome", e.Outcome.String()).
			Bool("repeated", e.Repeated).
			Int("remaining", e.Remaining)

	case *events.ShotRejectedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("row", e.Target.Row).
			Int("col", e.Target.Col).
			Str("reason", e.Reason)

	case *events.ShipSunkEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("owner_id", e.OwnerID).
			Int("size", e.Size).
			Str("name", e.Name).
			Int("afloat", e.Afloat)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
