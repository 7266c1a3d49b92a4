package notification

import (
	"context"
	"sync"

	"github.com/carehome/carehome-api/internal/pkg/logger"
)

// Sink receives notifications. Delivery is fire-and-forget.
type Sink interface {
	Notify(ctx context.Context, n Notification)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ctx context.Context, n Notification)

func (f SinkFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Multi fans a notification out to every sink in order
type Multi []Sink

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, s := range m {
		if s != nil {
			s.Notify(ctx, n)
		}
	}
}

// Collector buffers notifications emitted during one request
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Notify(_ context.Context, n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

// Notifications returns a copy of what was collected, never nil
func (c *Collector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

type collectorKey struct{}

// WithCollector attaches c so ContextSink can find it
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// CollectorFrom returns the collector attached to ctx, if any
func CollectorFrom(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

// ContextSink forwards to the request's Collector. Without one it drops the notification.
type ContextSink struct{}

func (ContextSink) Notify(ctx context.Context, n Notification) {
	if c := CollectorFrom(ctx); c != nil {
		c.Notify(ctx, n)
	}
}

// LogSink writes notifications to the request logger
type LogSink struct{}

func (LogSink) Notify(ctx context.Context, n Notification) {
	l := logger.FromContext(ctx)
	event := l.Info()
	switch n.Severity {
	case SeverityError:
		event = l.Error()
	case SeverityWarning:
		event = l.Warn()
	}
	event.
		Str("record_id", n.RecordID.String()).
		Str("severity", string(n.Severity)).
		Str("title", n.Title).
		Msg(n.Message)
}
