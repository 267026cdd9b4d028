package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrChannelClosed is returned when sending on a channel that has been
// closed, locally or by the server.
var ErrChannelClosed = errors.New("push channel closed")

const eventBufferSize = 32

// Channel is one websocket push channel. Events arrive on Events in wire
// order; the read loop emits a final ClosedEvent or TransportErrorEvent and
// then closes the stream.
type Channel struct {
	conn    *websocket.Conn
	events  chan Event
	closing chan struct{}
	done    chan struct{}
	writeMu sync.Mutex
	once    sync.Once
}

// Dial connects a push channel to the given ws:// or wss:// URL.
func Dial(ctx context.Context, wsURL string) (*Channel, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, err
	}
	ch := &Channel{
		conn:    conn,
		events:  make(chan Event, eventBufferSize),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	ch.emit(OpenedEvent{})
	go ch.readLoop()
	return ch, nil
}

// Events returns the stream of decoded push events. The stream closes once
// the channel has shut down.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Done is closed once the channel has fully shut down.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// SendFrame writes one binary JPEG frame. Concurrent sends are serialized.
func (c *Channel) SendFrame(frame []byte) error {
	select {
	case <-c.closing:
		return ErrChannelClosed
	case <-c.done:
		return ErrChannelClosed
	default:
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		if isClosedErr(err) {
			return ErrChannelClosed
		}
		return err
	}
	return nil
}

// Close tears the channel down. Safe to call any number of times, including
// after the server closed the connection.
func (c *Channel) Close() error {
	c.once.Do(func() {
		close(c.closing)
		c.writeMu.Lock()
		c.conn.Close()
		c.writeMu.Unlock()
	})
	return nil
}

// readLoop is the only sender on the events channel, so it alone may close
// the stream.
func (c *Channel) readLoop() {
	defer func() {
		close(c.events)
		close(c.done)
	}()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.closing:
				// Local close; the read error is expected.
				c.emit(ClosedEvent{})
			default:
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.emit(ClosedEvent{})
				} else {
					c.emit(TransportErrorEvent{Err: err})
				}
			}
			return
		}
		ev, err := decodeEvent(data)
		if err != nil {
			// A malformed frame is not fatal to the channel.
			continue
		}
		c.emit(ev)
	}
}

// emit delivers an event without ever blocking the read loop. Push traffic
// is sparse; if the buffer somehow fills the event is dropped.
func (c *Channel) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}

func isClosedErr(err error) bool {
	return errors.Is(err, websocket.ErrCloseSent) ||
		strings.Contains(err.Error(), "use of closed network connection")
}
