package source

import (
	"context"
	"log"
	"time"
)

// Poller reads a Source on a fixed interval and hands each reading to a
// handler, one at a time. The monitor requires serialized ingestion, so the
// poller never overlaps handler calls. A failed read is logged and the tick
// skipped; the next tick retries against the same source.
type Poller struct {
	source   Source
	interval time.Duration
	handler  func(float64)
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewPoller creates a poller delivering readings from src to handler
func NewPoller(src Source, interval time.Duration, handler func(float64)) *Poller {
	return &Poller{
		source:   src,
		interval: interval,
		handler:  handler,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins polling in a background goroutine
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

// Stop halts polling and waits for the in-flight tick to finish
func (p *Poller) Stop() {
	close(p.stopCh)
	<-p.doneCh
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			value, err := p.source.Sample(ctx)
			if err != nil {
				log.Printf("sample read failed, skipping tick: %v", err)
				continue
			}
			p.handler(value)

		case <-p.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}
