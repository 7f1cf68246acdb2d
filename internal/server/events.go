package server

import "github.com/jagchew1/ireland-cauldron-sub000/internal/engine"

// buildEvents translates resolution-log entries appended since the last
// broadcast into client events. The log itself is the source of truth; this
// is only the incremental feed.
func buildEvents(g *engine.GameState, since int) []Event {
	if since >= len(g.Log) {
		return nil
	}
	events := make([]Event, 0, len(g.Log)-since)
	for _, e := range g.Log[since:] {
		events = append(events, Event{
			Type:       e.Type.String(),
			Ingredient: e.Ingredient,
			Message:    e.Message,
			Revealed:   centerViews(e.Revealed, true),
			Round:      e.Round,
		})
	}
	return events
}
