// Package session orchestrates one live interview: the proctoring push
// channel, camera sampling, turn exchange serialization and teardown. The
// server is the sole authority on warnings and termination; this package
// mirrors its decisions and never makes its own.
package session

import (
	"encoding/json"
	"fmt"
)

// Event is a push-channel event decoded off the wire. Implementations form a
// closed union; consumers switch on the concrete type.
type Event interface {
	sessionEvent()
}

// OpenedEvent reports that the push channel connected.
type OpenedEvent struct{}

// WarningEvent is a server-issued proctoring warning. Count is the server's
// running total, not a delta.
type WarningEvent struct {
	Count   int
	Message string
}

// TerminateEvent is the server's final word: the interview is over and no
// further turns will be accepted.
type TerminateEvent struct {
	Message string
}

// ClosedEvent reports an orderly close of the push channel.
type ClosedEvent struct{}

// TransportErrorEvent reports a read or connection failure on the channel.
type TransportErrorEvent struct {
	Err error
}

// SimTurnEvent is one utterance streamed from a running simulation.
type SimTurnEvent struct {
	Sender string
	Text   string
}

// SimCompleteEvent reports that a simulation finished and its transcript was
// stored server-side.
type SimCompleteEvent struct {
	Message string
}

// SimErrorEvent reports that a simulation failed partway.
type SimErrorEvent struct {
	Message string
}

// UnknownEvent carries an envelope kind this client does not recognize.
// Unknown kinds are logged and otherwise ignored.
type UnknownEvent struct {
	Kind string
}

func (OpenedEvent) sessionEvent()         {}
func (WarningEvent) sessionEvent()        {}
func (TerminateEvent) sessionEvent()      {}
func (ClosedEvent) sessionEvent()         {}
func (TransportErrorEvent) sessionEvent() {}
func (SimTurnEvent) sessionEvent()        {}
func (SimCompleteEvent) sessionEvent()    {}
func (SimErrorEvent) sessionEvent()       {}
func (UnknownEvent) sessionEvent()        {}

// envelope is the common shape of every server push message.
type envelope struct {
	Type    string          `json:"type"`
	Count   int             `json:"count"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// simTurnData is the payload of a simulation "turn" envelope.
type simTurnData struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// decodeEvent parses one push message into its typed event.
func decodeEvent(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding push event: %w", err)
	}
	switch env.Type {
	case "warning":
		return WarningEvent{Count: env.Count, Message: env.Message}, nil
	case "terminate":
		return TerminateEvent{Message: env.Message}, nil
	case "turn":
		var turn simTurnData
		if err := json.Unmarshal(env.Data, &turn); err != nil {
			return nil, fmt.Errorf("decoding simulation turn: %w", err)
		}
		return SimTurnEvent{Sender: turn.Sender, Text: turn.Text}, nil
	case "complete":
		return SimCompleteEvent{Message: env.Message}, nil
	case "error":
		return SimErrorEvent{Message: env.Message}, nil
	default:
		return UnknownEvent{Kind: env.Type}, nil
	}
}
