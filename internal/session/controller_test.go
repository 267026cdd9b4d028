package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vetta-dev/vetta/internal/api"
)

type fakeCamera struct {
	source *fakeSource
	err    error
}

func (c *fakeCamera) Acquire(ctx context.Context) (FrameSource, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.source, nil
}

// platformServer is a minimal interview backend: start, chat and the
// proctoring websocket. Binary frames received on the socket are counted.
type platformServer struct {
	srv            *httptest.Server
	frames         atomic.Int64
	chatDelay      time.Duration
	terminate      atomic.Bool
	chatStatus     atomic.Int64
	dropProctoring atomic.Bool
}

func newPlatformServer(t *testing.T) *platformServer {
	t.Helper()
	ps := &platformServer{}
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/interview/start", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"interviewId": 7, "message": "Hello, tell me about yourself."}`))
	})
	mux.HandleFunc("/interview/7/chat", func(w http.ResponseWriter, r *http.Request) {
		if ps.chatDelay > 0 {
			time.Sleep(ps.chatDelay)
		}
		if status := ps.chatStatus.Load(); status != 0 {
			w.WriteHeader(int(status))
			w.Write([]byte(`{"detail": "model overloaded"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message":      "Interesting, go on.",
			"isTerminated": ps.terminate.Load(),
		})
	})
	mux.HandleFunc("/ws/proctoring/7", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if ps.dropProctoring.Load() {
			conn.Close()
			return
		}
		for {
			kind, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if kind == websocket.BinaryMessage {
				ps.frames.Add(1)
			}
		}
	})
	ps.srv = httptest.NewServer(mux)
	t.Cleanup(ps.srv.Close)
	return ps
}

func (ps *platformServer) controller(camera Camera, interval time.Duration) *Controller {
	client := api.NewClient(ps.srv.URL, 5*time.Second)
	return NewController(client, camera, nil, interval)
}

func TestControllerStartAndTeardown(t *testing.T) {
	ps := newPlatformServer(t)
	source := &fakeSource{}
	ctrl := ps.controller(&fakeCamera{source: source}, 10*time.Millisecond)

	info, err := ctrl.Start(context.Background(), "Dana")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if info.Handle.ID != "7" {
		t.Errorf("Handle.ID = %q, want 7", info.Handle.ID)
	}
	if info.Opening != "Hello, tell me about yourself." {
		t.Errorf("Opening = %q", info.Opening)
	}
	if info.CameraErr != nil {
		t.Errorf("CameraErr = %v, want nil", info.CameraErr)
	}

	// Frames should reach the server while the session runs.
	deadline := time.Now().Add(2 * time.Second)
	for ps.frames.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if ps.frames.Load() == 0 {
		t.Error("server received no proctoring frames")
	}

	ctrl.Teardown()
	ctrl.Teardown() // idempotent

	source.mu.Lock()
	released := source.released
	source.mu.Unlock()
	if !released {
		t.Error("camera not released on teardown")
	}
	if _, active := ctrl.Handle(); active {
		t.Error("handle still active after teardown")
	}
}

func TestControllerRejectsSecondStart(t *testing.T) {
	ps := newPlatformServer(t)
	ctrl := ps.controller(&fakeCamera{source: &fakeSource{}}, time.Second)

	if _, err := ctrl.Start(context.Background(), "Dana"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer ctrl.Teardown()

	if _, err := ctrl.Start(context.Background(), "Eve"); !errors.Is(err, ErrSessionActive) {
		t.Errorf("second Start = %v, want ErrSessionActive", err)
	}
}

func TestControllerStartRequiresName(t *testing.T) {
	ps := newPlatformServer(t)
	ctrl := ps.controller(nil, time.Second)

	if _, err := ctrl.Start(context.Background(), "   "); err == nil {
		t.Error("Start with blank name should fail")
	}
}

func TestControllerCameraFailureDegrades(t *testing.T) {
	ps := newPlatformServer(t)
	ctrl := ps.controller(&fakeCamera{err: ErrNoCamera}, time.Second)

	info, err := ctrl.Start(context.Background(), "Dana")
	if err != nil {
		t.Fatalf("Start should survive a missing camera, got %v", err)
	}
	defer ctrl.Teardown()

	if info.CameraErr == nil {
		t.Error("CameraErr should report the degraded session")
	}
	if _, active := ctrl.Handle(); !active {
		t.Error("session should be active despite camera failure")
	}
}

func TestControllerSerializesTurns(t *testing.T) {
	ps := newPlatformServer(t)
	ps.chatDelay = 200 * time.Millisecond
	ctrl := ps.controller(nil, time.Second)

	if _, err := ctrl.Start(context.Background(), "Dana"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer ctrl.Teardown()

	firstDone := make(chan error, 1)
	go func() {
		_, err := ctrl.SendTurn(context.Background(), "My name is Dana")
		firstDone <- err
	}()
	time.Sleep(50 * time.Millisecond)

	if _, err := ctrl.SendTurn(context.Background(), "second"); !errors.Is(err, ErrTurnInFlight) {
		t.Errorf("overlapping SendTurn = %v, want ErrTurnInFlight", err)
	}
	if err := <-firstDone; err != nil {
		t.Errorf("first SendTurn failed: %v", err)
	}
}

func TestControllerTerminatedReplyEndsSession(t *testing.T) {
	ps := newPlatformServer(t)
	ps.terminate.Store(true)
	ctrl := ps.controller(nil, time.Second)

	if _, err := ctrl.Start(context.Background(), "Dana"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer ctrl.Teardown()

	result, err := ctrl.SendTurn(context.Background(), "goodbye")
	if err != nil {
		t.Fatalf("SendTurn failed: %v", err)
	}
	if !result.Terminated {
		t.Fatal("reply should report termination")
	}
	if !ctrl.Over() {
		t.Error("session should be over after a terminated reply")
	}
	if _, err := ctrl.SendTurn(context.Background(), "one more"); !errors.Is(err, ErrSessionOver) {
		t.Errorf("SendTurn after termination = %v, want ErrSessionOver", err)
	}
}

func TestControllerTurnFailureKeepsSessionOpen(t *testing.T) {
	ps := newPlatformServer(t)
	ps.chatStatus.Store(http.StatusServiceUnavailable)
	ctrl := ps.controller(nil, time.Second)

	if _, err := ctrl.Start(context.Background(), "Dana"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer ctrl.Teardown()

	if _, err := ctrl.SendTurn(context.Background(), "hello"); err == nil {
		t.Fatal("SendTurn should surface the server error")
	}
	if ctrl.Over() {
		t.Error("a failed turn must not end the session")
	}

	// The session recovers once the server does.
	ps.chatStatus.Store(0)
	if _, err := ctrl.SendTurn(context.Background(), "hello again"); err != nil {
		t.Errorf("SendTurn after recovery failed: %v", err)
	}
}

func TestControllerSamplerStopsWhenChannelCloses(t *testing.T) {
	ps := newPlatformServer(t)
	ps.dropProctoring.Store(true)
	source := &fakeSource{}
	ctrl := ps.controller(&fakeCamera{source: source}, 5*time.Millisecond)

	if _, err := ctrl.Start(context.Background(), "Dana"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer ctrl.Teardown()

	// The server drops the socket without a close frame. Drain the event
	// stream until it ends so the channel is fully shut down.
	events := ctrl.Events()
	timeout := time.After(2 * time.Second)
	for events != nil {
		select {
		case _, ok := <-events:
			if !ok {
				events = nil
			}
		case <-timeout:
			t.Fatal("timed out waiting for the channel to shut down")
		}
	}

	// Let any in-flight capture finish, then the count must hold still.
	time.Sleep(20 * time.Millisecond)
	source.mu.Lock()
	before := source.captures
	source.mu.Unlock()

	time.Sleep(100 * time.Millisecond)
	source.mu.Lock()
	after := source.captures
	source.mu.Unlock()
	if after != before {
		t.Errorf("camera captured %d more frames after the channel closed", after-before)
	}
}

func TestControllerLateReplyAfterTerminate(t *testing.T) {
	ps := newPlatformServer(t)
	ps.chatDelay = 200 * time.Millisecond
	ctrl := ps.controller(nil, time.Second)

	if _, err := ctrl.Start(context.Background(), "Dana"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer ctrl.Teardown()

	type reply struct {
		result *api.TurnResult
		err    error
	}
	done := make(chan reply, 1)
	go func() {
		result, err := ctrl.SendTurn(context.Background(), "My name is Dana")
		done <- reply{result, err}
	}()
	time.Sleep(50 * time.Millisecond)

	// A terminate push races the in-flight chat call. The late reply still
	// resolves so it can be appended for the record, but the session stays
	// over and accepts nothing further.
	ctrl.NoteTerminated("proctoring violations")
	if !ctrl.Over() {
		t.Fatal("session should be over as soon as terminate arrives")
	}

	got := <-done
	if got.err != nil {
		t.Fatalf("in-flight SendTurn failed: %v", got.err)
	}
	if got.result.Message == "" {
		t.Error("late reply should carry the interviewer's message")
	}
	if !ctrl.Over() {
		t.Error("late reply must not reopen the session")
	}
	if _, err := ctrl.SendTurn(context.Background(), "still there?"); !errors.Is(err, ErrSessionOver) {
		t.Errorf("SendTurn after terminate = %v, want ErrSessionOver", err)
	}
}

func TestControllerNoteTerminated(t *testing.T) {
	ps := newPlatformServer(t)
	ctrl := ps.controller(nil, time.Second)

	if _, err := ctrl.Start(context.Background(), "Dana"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer ctrl.Teardown()

	ctrl.NoteTerminated("proctoring violations")
	if !ctrl.Over() {
		t.Error("session should be over after NoteTerminated")
	}
	if _, err := ctrl.SendTurn(context.Background(), "still there?"); !errors.Is(err, ErrSessionOver) {
		t.Errorf("SendTurn = %v, want ErrSessionOver", err)
	}
}
