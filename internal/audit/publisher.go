package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Publisher delivers audit events to a sink. Implementations must tolerate
// being called from the owner's single session loop without buffering
// guarantees beyond their own.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Stamp fills the generated fields of an event before emission.
func Stamp(event Event) Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	return event
}

// LogPublisher writes events to structured logs. It is the default sink
// when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(ctx context.Context, event Event) error {
	event = Stamp(event)
	p.logger.InfoContext(ctx, string(event.Action),
		"log_type", "audit",
		"event_id", event.ID,
		"owner", event.Owner,
		"board", event.Board,
		"item_id", event.ItemID,
		"email", event.Email,
	)
	return nil
}

// MemoryPublisher collects events for assertions in tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Emit(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Stamp(event))
	return nil
}

// Events returns a copy of everything emitted so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Last returns the most recent event, or a zero event when none were emitted.
func (p *MemoryPublisher) Last() Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return Event{}
	}
	return p.events[len(p.events)-1]
}
