package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// FrameSink receives captured frames. Implemented by *Channel.
type FrameSink interface {
	SendFrame(frame []byte) error
}

// SamplerStats counts sampler activity for logging.
type SamplerStats struct {
	Sent    int64
	Dropped int64
	Failed  int64
}

// Sampler captures a frame at a fixed interval and pushes it to a sink. A
// capture that outlasts its tick causes the next tick to be dropped rather
// than queued, so at most one capture is in flight at a time. Once stopped a
// sampler never restarts.
type Sampler struct {
	source   FrameSource
	sink     FrameSink
	interval time.Duration

	inFlight atomic.Bool
	sent     atomic.Int64
	dropped  atomic.Int64
	failed   atomic.Int64

	stopOnce sync.Once
	stop     chan struct{}
	finished chan struct{}
}

// NewSampler creates a sampler over an acquired frame source. Call Run to
// start it.
func NewSampler(source FrameSource, sink FrameSink, interval time.Duration) *Sampler {
	return &Sampler{
		source:   source,
		sink:     sink,
		interval: interval,
		stop:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Run ticks until Stop is called or the context ends. It is meant to run on
// its own goroutine.
func (s *Sampler) Run(ctx context.Context) {
	defer close(s.finished)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sampler) tick(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.dropped.Add(1)
		return
	}
	go func() {
		defer s.inFlight.Store(false)
		frame, err := s.source.Capture(ctx)
		if err != nil {
			s.failed.Add(1)
			return
		}
		select {
		case <-s.stop:
			return
		default:
		}
		if err := s.sink.SendFrame(frame); err != nil {
			s.failed.Add(1)
			return
		}
		s.sent.Add(1)
	}()
}

// Stop halts the ticker permanently. Idempotent.
func (s *Sampler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Wait blocks until the Run loop has exited.
func (s *Sampler) Wait() {
	<-s.finished
}

// Stats returns a snapshot of sampler counters.
func (s *Sampler) Stats() SamplerStats {
	return SamplerStats{
		Sent:    s.sent.Load(),
		Dropped: s.dropped.Load(),
		Failed:  s.failed.Load(),
	}
}
