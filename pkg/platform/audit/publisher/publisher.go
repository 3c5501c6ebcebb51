// Package publisher provides audit event publishers: a structured-log
// publisher for single-binary deployments, an in-memory publisher for
// tests, and a Kafka publisher for deployments with a broker.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tally/pkg/platform/audit"
)

// Publisher is the port services emit audit events through.
type Publisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// SlogPublisher writes audit events to a structured logger. It is the
// default sink when no broker is configured.
type SlogPublisher struct {
	logger *slog.Logger
}

// NewSlog constructs a logger-backed publisher.
func NewSlog(logger *slog.Logger) *SlogPublisher {
	return &SlogPublisher{logger: logger}
}

func (p *SlogPublisher) Emit(ctx context.Context, event audit.Event) error {
	if p.logger == nil {
		return nil
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	p.logger.InfoContext(ctx, event.Action,
		"log_type", "audit",
		"category", string(event.Category),
		"tick", uint64(event.Tick),
		"donor_id", uint64(event.Donor),
		"campaign_id", uint64(event.Campaign),
		"amount", event.Amount,
		"actor", string(event.Actor),
		"reason", event.Reason,
		"request_id", event.RequestID,
	)
	return nil
}

// MemoryPublisher records events for test assertions.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []audit.Event
}

// NewMemory constructs an in-memory publisher.
func NewMemory() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Emit(_ context.Context, event audit.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything emitted so far.
func (p *MemoryPublisher) Events() []audit.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]audit.Event, len(p.events))
	copy(out, p.events)
	return out
}

// Actions returns the emitted action names in order, for terse assertions.
func (p *MemoryPublisher) Actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}
