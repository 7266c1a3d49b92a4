package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Registry holds the live room finder sessions of this instance.
// Each session owns its own Wizard.
type Registry struct {
	deps Dependencies
	ttl  time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]*Wizard
}

func NewRegistry(deps Dependencies, ttl time.Duration) *Registry {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Registry{
		deps:     deps,
		ttl:      ttl,
		sessions: make(map[uuid.UUID]*Wizard),
	}
}

// Start creates and initializes a wizard for recordID.
// No session is stored when the record does not exist.
func (r *Registry) Start(ctx context.Context, recordID uuid.UUID) (uuid.UUID, *Wizard, error) {
	w := New(recordID, r.deps)
	if err := w.Initialize(ctx); err != nil {
		return uuid.Nil, nil, err
	}

	id := uuid.New()
	r.mu.Lock()
	r.sessions[id] = w
	n := len(r.sessions)
	r.mu.Unlock()

	r.deps.Metrics.SetSessions(n)
	return id, w, nil
}

// Get returns the session's wizard or ErrSessionNotFound
func (r *Registry) Get(id uuid.UUID) (*Wizard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return w, nil
}

// Remove drops a session; it reports whether it existed
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	r.deps.Metrics.SetSessions(n)
	return ok
}

// Sweep removes sessions idle for longer than the TTL. Busy sessions are kept.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	removed := 0
	for id, w := range r.sessions {
		if w.Busy() || now.Sub(w.LastActivity()) <= r.ttl {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	n := len(r.sessions)
	r.mu.Unlock()

	r.deps.Metrics.SetSessions(n)
	return removed
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// StartSweeper runs Sweep on the given cron schedule. Stop the returned cron on shutdown.
func StartSweeper(r *Registry, schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(schedule, func() {
		if n := r.Sweep(r.deps.Now()); n > 0 {
			log.Info().Int("removed", n).Int("remaining", r.Len()).Msg("Expired room finder sessions swept")
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
