package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterLogRouter subscribes handlers that record bus activity with
// zerolog. Hint usage is logged at info level so navigation behavior can
// be traced from the log file; everything else is debug noise.
func RegisterLogRouter(bus *EventBus, logger zerolog.Logger) {
	bus.SubscribeHintUsed(func(p HintUsedPayload) {
		logger.Info().
			Str("direction", p.Direction).
			Msg("change hint used")
	})

	bus.SubscribeRevisionSelected(func(p RevisionSelectedPayload) {
		logger.Debug().
			Str("revision_id", p.RevisionID).
			Msg("revision selected")
	})

	bus.SubscribeRevisionsReloaded(func(p RevisionsReloadedPayload) {
		logger.Debug().
			Int("count", p.Count).
			Msg("revisions reloaded")
	})

	bus.OnDrop(func(event Event, _ any) {
		logger.Warn().Str("event", string(event)).Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}
