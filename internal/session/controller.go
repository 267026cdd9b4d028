package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/log"
)

var (
	// ErrSessionActive is returned by Start while a session is live.
	ErrSessionActive = errors.New("a session is already active")
	// ErrNoSession is returned by operations that need a live session.
	ErrNoSession = errors.New("no active session")
	// ErrSessionOver is returned by SendTurn after termination.
	ErrSessionOver = errors.New("session is over")
	// ErrTurnInFlight is returned by SendTurn while a previous turn is
	// still waiting for its reply.
	ErrTurnInFlight = errors.New("a turn is already in flight")
)

// Handle identifies one started session.
type Handle struct {
	ID        api.ID
	Candidate string
}

// StartInfo is everything Start learned: the session handle, the
// interviewer's opening message and whether the camera came up. CameraErr is
// informational; a session without frames is degraded, not failed.
type StartInfo struct {
	Handle    Handle
	Opening   string
	CameraErr error
}

// Controller runs at most one live interview session at a time. It owns the
// proctoring channel, the camera and the frame sampler, serializes turn
// exchange, and guarantees teardown runs exactly once per session.
type Controller struct {
	client        *api.Client
	camera        Camera
	logger        *log.Logger
	frameInterval time.Duration

	mu     sync.Mutex
	active *liveSession
}

type liveSession struct {
	handle  Handle
	channel *Channel
	source  FrameSource
	sampler *Sampler
	cancel  context.CancelFunc

	turnInFlight atomic.Bool
	over         atomic.Bool
	turns        atomic.Int64
	started      time.Time
	teardown     sync.Once
}

// NewController wires a controller. A nil camera disables proctoring frames
// entirely; the channel still opens so warnings can arrive.
func NewController(client *api.Client, camera Camera, logger *log.Logger, frameInterval time.Duration) *Controller {
	return &Controller{
		client:        client,
		camera:        camera,
		logger:        logger,
		frameInterval: frameInterval,
	}
}

// Start creates a server-side interview, opens the proctoring channel and
// begins sampling frames. Camera failure degrades the session instead of
// failing it; channel or API failure fails Start outright.
func (c *Controller) Start(ctx context.Context, candidateName string) (*StartInfo, error) {
	candidateName = strings.TrimSpace(candidateName)
	if candidateName == "" {
		return nil, errors.New("candidate name must not be empty")
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		return nil, ErrSessionActive
	}
	c.mu.Unlock()

	result, err := c.client.StartInterview(ctx, candidateName)
	if err != nil {
		return nil, err
	}
	if result.InterviewID == "" {
		return nil, errors.New("server returned an empty interview id")
	}
	handle := Handle{ID: result.InterviewID, Candidate: candidateName}

	wsURL, err := c.client.WebSocketURL("/ws/proctoring/" + string(handle.ID))
	if err != nil {
		return nil, err
	}
	channel, err := Dial(ctx, wsURL)
	if err != nil {
		return nil, fmt.Errorf("opening proctoring channel: %w", err)
	}

	live := &liveSession{
		handle:  handle,
		channel: channel,
		started: time.Now(),
	}
	info := &StartInfo{Handle: handle, Opening: result.Message}

	if c.camera != nil {
		source, err := c.camera.Acquire(ctx)
		if err != nil {
			info.CameraErr = err
			c.log(log.LogEvent{
				Event:       log.EventCameraUnavailable,
				InterviewID: string(handle.ID),
				Error:       err.Error(),
			})
		} else {
			live.source = source
			live.sampler = NewSampler(source, channel, c.frameInterval)
			samplerCtx, cancel := context.WithCancel(context.Background())
			live.cancel = cancel
			go live.sampler.Run(samplerCtx)
			// Sampling must stop the moment the channel shuts down, no
			// matter who closed it.
			go func() {
				<-channel.Done()
				live.sampler.Stop()
			}()
		}
	} else {
		info.CameraErr = ErrNoCamera
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		teardownLive(live)
		return nil, ErrSessionActive
	}
	c.active = live
	c.mu.Unlock()

	c.log(log.LogEvent{
		Event:       log.EventSessionStarted,
		InterviewID: string(handle.ID),
		Candidate:   candidateName,
	})
	return info, nil
}

// Handle returns the active session's handle, if any.
func (c *Controller) Handle() (Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return Handle{}, false
	}
	return c.active.handle, true
}

// Events returns the active session's push-event stream, or nil without one.
func (c *Controller) Events() <-chan Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil
	}
	return c.active.channel.Events()
}

// Over reports whether the active session has ended. True with no active
// session at all.
func (c *Controller) Over() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return true
	}
	return c.active.over.Load()
}

// SendTurn exchanges one candidate message for the interviewer's reply. Only
// one turn may be in flight; a terminated reply marks the session over and
// closes the push channel so no further frames go out.
func (c *Controller) SendTurn(ctx context.Context, text string) (*api.TurnResult, error) {
	c.mu.Lock()
	live := c.active
	c.mu.Unlock()
	if live == nil {
		return nil, ErrNoSession
	}
	if live.over.Load() {
		return nil, ErrSessionOver
	}
	if !live.turnInFlight.CompareAndSwap(false, true) {
		return nil, ErrTurnInFlight
	}
	defer live.turnInFlight.Store(false)

	result, err := c.client.SendTurn(ctx, live.handle.ID, text)
	if err != nil {
		c.log(log.LogEvent{
			Event:       log.EventTurnFailed,
			InterviewID: string(live.handle.ID),
			Error:       err.Error(),
		})
		return nil, err
	}
	live.turns.Add(1)
	c.log(log.LogEvent{
		Event:       log.EventTurnSent,
		InterviewID: string(live.handle.ID),
		Turns:       int(live.turns.Load()),
	})

	if result.Terminated {
		c.markOver(live, "interviewer ended the interview")
	}
	return result, nil
}

// NoteWarning records a server warning for the log. State tracking lives in
// ProctorState; this only writes the audit line.
func (c *Controller) NoteWarning(count int, message string) {
	c.mu.Lock()
	live := c.active
	c.mu.Unlock()
	if live == nil {
		return
	}
	c.log(log.LogEvent{
		Event:       log.EventWarningReceived,
		InterviewID: string(live.handle.ID),
		Warnings:    count,
		Message:     message,
	})
}

// NoteTerminated marks the session over after a terminate push event. The
// channel closes so sampling stops at the source; the camera stays acquired
// until Teardown.
func (c *Controller) NoteTerminated(reason string) {
	c.mu.Lock()
	live := c.active
	c.mu.Unlock()
	if live == nil {
		return
	}
	c.markOver(live, reason)
}

func (c *Controller) markOver(live *liveSession, reason string) {
	if live.over.Swap(true) {
		return
	}
	if live.sampler != nil {
		live.sampler.Stop()
	}
	live.channel.Close()
	c.log(log.LogEvent{
		Event:       log.EventSessionTerminated,
		InterviewID: string(live.handle.ID),
		Reason:      reason,
		Turns:       int(live.turns.Load()),
	})
}

// Teardown releases every resource of the active session: sampler first so
// no capture is racing the channel, then the channel, then the camera.
// Idempotent; safe on a session that already terminated.
func (c *Controller) Teardown() {
	c.mu.Lock()
	live := c.active
	c.active = nil
	c.mu.Unlock()
	if live == nil {
		return
	}
	live.teardown.Do(func() {
		stats := teardownLive(live)
		if stats.Dropped > 0 {
			c.log(log.LogEvent{
				Event:       log.EventFrameDropped,
				InterviewID: string(live.handle.ID),
				Frames:      int(stats.Dropped),
			})
		}
		c.log(log.LogEvent{
			Event:       log.EventTeardown,
			InterviewID: string(live.handle.ID),
			Turns:       int(live.turns.Load()),
			Frames:      int(stats.Sent),
			DurationMs:  time.Since(live.started).Milliseconds(),
		})
	})
}

func teardownLive(live *liveSession) SamplerStats {
	var stats SamplerStats
	if live.sampler != nil {
		live.sampler.Stop()
		if live.cancel != nil {
			live.cancel()
		}
		live.sampler.Wait()
		stats = live.sampler.Stats()
	}
	live.channel.Close()
	if live.source != nil {
		live.source.Release()
	}
	return stats
}

func (c *Controller) log(ev log.LogEvent) {
	if c.logger == nil {
		return
	}
	// Logging must never break a session.
	_ = c.logger.Append(ev)
}
