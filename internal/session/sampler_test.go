package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	mu       sync.Mutex
	delay    time.Duration
	captures int
	released bool
	failWith error
}

func (f *fakeSource) Capture(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	f.captures++
	delay := f.delay
	failWith := f.failWith
	f.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if failWith != nil {
		return nil, failWith
	}
	return []byte{0xff, 0xd8, 0xff}, nil
}

func (f *fakeSource) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = true
	return nil
}

type collectSink struct {
	mu     sync.Mutex
	frames int
}

func (s *collectSink) SendFrame(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	return nil
}

func (s *collectSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func TestSamplerDeliversFrames(t *testing.T) {
	source := &fakeSource{}
	sink := &collectSink{}
	sampler := NewSampler(source, sink, 5*time.Millisecond)

	go sampler.Run(context.Background())
	time.Sleep(100 * time.Millisecond)
	sampler.Stop()
	sampler.Wait()

	if sink.count() == 0 {
		t.Error("sampler delivered no frames")
	}
	if got := sampler.Stats().Sent; got == 0 {
		t.Errorf("Stats().Sent = %d, want > 0", got)
	}
}

func TestSamplerDropsWhileCaptureInFlight(t *testing.T) {
	// Captures outlast the tick interval, so most ticks must be dropped
	// rather than queued behind the slow capture.
	source := &fakeSource{delay: 60 * time.Millisecond}
	sink := &collectSink{}
	sampler := NewSampler(source, sink, 5*time.Millisecond)

	go sampler.Run(context.Background())
	time.Sleep(100 * time.Millisecond)
	sampler.Stop()
	sampler.Wait()

	stats := sampler.Stats()
	if stats.Dropped == 0 {
		t.Errorf("Stats().Dropped = 0, want > 0 (sent=%d)", stats.Sent)
	}
	source.mu.Lock()
	captures := source.captures
	source.mu.Unlock()
	if captures > 3 {
		t.Errorf("%d captures started in 100ms of 60ms captures, want at most 3", captures)
	}
}

func TestSamplerCountsFailedCaptures(t *testing.T) {
	source := &fakeSource{failWith: errors.New("device busy")}
	sink := &collectSink{}
	sampler := NewSampler(source, sink, 5*time.Millisecond)

	go sampler.Run(context.Background())
	time.Sleep(50 * time.Millisecond)
	sampler.Stop()
	sampler.Wait()

	stats := sampler.Stats()
	if stats.Failed == 0 {
		t.Error("Stats().Failed = 0, want > 0")
	}
	if sink.count() != 0 {
		t.Errorf("sink received %d frames from a failing source", sink.count())
	}
}

func TestSamplerStopIsPermanent(t *testing.T) {
	source := &fakeSource{}
	sink := &collectSink{}
	sampler := NewSampler(source, sink, 5*time.Millisecond)

	go sampler.Run(context.Background())
	time.Sleep(30 * time.Millisecond)
	sampler.Stop()
	sampler.Stop() // idempotent
	sampler.Wait()

	before := sink.count()
	time.Sleep(30 * time.Millisecond)
	if after := sink.count(); after != before {
		t.Errorf("frames kept flowing after Stop: %d -> %d", before, after)
	}
}
