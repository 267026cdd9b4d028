package session

import (
	"context"
	"fmt"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/log"
)

// SimulationPlaceholder seeds the live transcript while the first turn is
// still in flight.
const SimulationPlaceholder = "Simulation starting..."

// Simulation streams one agent-vs-agent run over its push channel. Unlike a
// proctoring channel the client never sends; it only folds turns into a
// transcript until the run completes or errors out.
type Simulation struct {
	channel    *Channel
	logger     *log.Logger
	Transcript Transcript
	// Live is true while turns may still arrive.
	Live bool
	// Failed is true after an error event; the transcript is discarded
	// rather than shown half-built.
	Failed bool
	// Notice holds the completion or error message for display.
	Notice string
}

// StartSimulation triggers a run server-side and opens the channel its turns
// stream over. The transcript starts with a placeholder the first turn
// replaces.
func StartSimulation(ctx context.Context, client *api.Client, logger *log.Logger) (*Simulation, error) {
	if _, err := client.RunSimulation(ctx); err != nil {
		return nil, err
	}
	wsURL, err := client.WebSocketURL("/ws/simulation")
	if err != nil {
		return nil, err
	}
	channel, err := Dial(ctx, wsURL)
	if err != nil {
		return nil, fmt.Errorf("opening simulation channel: %w", err)
	}
	sim := &Simulation{channel: channel, logger: logger, Live: true}
	sim.Transcript.SeedPlaceholder(SimulationPlaceholder)
	if logger != nil {
		_ = logger.Append(log.LogEvent{Event: log.EventSimulationStarted})
	}
	return sim, nil
}

// Events returns the stream of decoded simulation events.
func (s *Simulation) Events() <-chan Event {
	return s.channel.Events()
}

// Apply folds one event into the simulation and reports whether the view
// should re-render.
func (s *Simulation) Apply(ev Event) bool {
	switch ev := ev.(type) {
	case SimTurnEvent:
		if !s.Live {
			return false
		}
		s.Transcript.ReplacePlaceholder(ClassifySender(ev.Sender), ev.Text)
		return true
	case SimCompleteEvent:
		s.Live = false
		s.Notice = ev.Message
		s.Transcript.AppendHighlighted(RoleSystem, ev.Message)
		if s.logger != nil {
			_ = s.logger.Append(log.LogEvent{
				Event: log.EventSimulationComplete,
				Turns: s.Transcript.Len(),
			})
		}
		return true
	case SimErrorEvent:
		// A failed run shows its error, never a partial transcript. The
		// channel has nothing more to say, so close it right away.
		s.Live = false
		s.Failed = true
		s.Notice = ev.Message
		s.Transcript.Clear()
		if s.logger != nil {
			_ = s.logger.Append(log.LogEvent{
				Event: log.EventSimulationError,
				Error: ev.Message,
			})
		}
		s.Close()
		return true
	case ClosedEvent, TransportErrorEvent:
		if s.Live {
			s.Live = false
			if s.Notice == "" {
				s.Notice = "connection lost"
			}
		}
		return true
	default:
		return false
	}
}

// Close tears the channel down. Idempotent.
func (s *Simulation) Close() {
	s.channel.Close()
}
