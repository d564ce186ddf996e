package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketsim/internal/domain/models"
	drepo "marketsim/internal/domain/repository"
)

// TickSink is the minimal downstream the pipeline delivers to, typically a
// websocket session.
type TickSink interface {
	Send(t models.Tick) error
}

// StreamPipeline sits between the tick engine and one dashboard connection.
// It validates ticks, throttles per-symbol delivery, and buffers with retry
// when the downstream write stalls, so a slow client never blocks the
// engine's fan-out.
type StreamPipeline struct {
	sink      TickSink
	metrics   drepo.Metrics
	maxPerSec int
	bufSize   int
	bufCh     chan models.Tick
	stopCh    chan struct{}
	started   bool
	mu        sync.Mutex
	lastSeen  map[string]time.Time // per-symbol last accepted time
}

type PipelineOption func(*StreamPipeline)

// WithMaxPerSecond caps delivered ticks per second per symbol.
func WithMaxPerSecond(n int) PipelineOption {
	return func(p *StreamPipeline) {
		if n > 0 {
			p.maxPerSec = n
		}
	}
}

// WithBufferSize sets the retry buffer size used when the sink is stalled.
func WithBufferSize(n int) PipelineOption {
	return func(p *StreamPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewStreamPipeline creates a pipeline for one sink.
func NewStreamPipeline(sink TickSink, metrics drepo.Metrics, opts ...PipelineOption) *StreamPipeline {
	p := &StreamPipeline{
		sink:      sink,
		metrics:   metrics,
		maxPerSec: 20,
		bufSize:   256,
		stopCh:    make(chan struct{}),
		lastSeen:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.bufCh = make(chan models.Tick, p.bufSize)
	return p
}

// Start launches background flushing of buffered ticks.
func (p *StreamPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stopCh:
				return
			case t := <-p.bufCh:
				if err := p.sink.Send(t); err != nil {
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("stream_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- t:
					default:
						p.metrics.RecordError("stream_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *StreamPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Push validates and throttles a tick, then forwards it to the sink,
// buffering on write errors.
func (p *StreamPipeline) Push(t models.Tick) error {
	start := time.Now()
	if err := validateTick(t); err != nil {
		p.metrics.RecordError("stream_validate")
		return err
	}
	if !p.allow(t.Symbol, start) {
		// throttled; drop silently
		p.metrics.RecordError("stream_throttle")
		return nil
	}

	if err := p.sink.Send(t); err != nil {
		p.metrics.RecordError("stream_send")
		select {
		case p.bufCh <- t:
		default:
			p.metrics.RecordError("stream_buffer_full")
		}
		return fmt.Errorf("stream downstream: %w", err)
	}
	p.metrics.RecordLatency("stream_send", time.Since(start).Seconds())
	return nil
}

func validateTick(t models.Tick) error {
	if t.Symbol == "" {
		return fmt.Errorf("symbol empty")
	}
	if t.Timestamp <= 0 {
		return fmt.Errorf("timestamp invalid")
	}
	if t.Price <= 0 || t.Volume < 0 {
		return fmt.Errorf("invalid price/volume")
	}
	return nil
}

func (p *StreamPipeline) allow(symbol string, now time.Time) bool {
	if p.maxPerSec <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	last := p.lastSeen[symbol]
	if last.IsZero() {
		p.lastSeen[symbol] = now
		return true
	}
	if now.Sub(last) < time.Second/time.Duration(p.maxPerSec) {
		return false
	}
	p.lastSeen[symbol] = now
	return true
}
