package activity

import (
	"context"
	"sync"
	"time"
)

// Event describes one auditable action taken against the content tree or the
// translation store.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Hook receives emitted events. Implementations must be safe for concurrent
// use.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// Hooks is an ordered hook collection.
type Hooks []Hook

// Config controls event emission.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter fans events out to the configured hooks. A nil or disabled emitter
// drops events silently so call sites do not need guards.
type Emitter struct {
	hooks  Hooks
	config Config
}

// NewEmitter builds an emitter over the given hooks.
func NewEmitter(hooks Hooks, config Config) *Emitter {
	return &Emitter{hooks: hooks, config: config}
}

// Enabled reports whether events will be delivered.
func (e *Emitter) Enabled() bool {
	return e != nil && e.config.Enabled && len(e.hooks) > 0
}

// Emit delivers the event to every hook. Defaults the channel and timestamp
// when the caller left them unset. Hook errors stop delivery and surface.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if event.Channel == "" {
		event.Channel = e.config.Channel
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	for _, hook := range e.hooks {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// CaptureHook records every delivered event, for tests.
type CaptureHook struct {
	mu     sync.Mutex
	Events []Event
}

// Notify appends the event to the capture list.
func (h *CaptureHook) Notify(_ context.Context, event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Events = append(h.Events, event)
	return nil
}
