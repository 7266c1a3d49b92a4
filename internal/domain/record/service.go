package record

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/carehome/carehome-api/internal/pkg/logger"
	"github.com/carehome/carehome-api/internal/pkg/metrics"
)

// UpdatedChannel is the Redis channel carrying ids of records changed by a booking
const UpdatedChannel = "record:updated"

const cacheName = "record_context"

// Service provides cached record context and the record-updated signal
type Service struct {
	repo    Repository
	redis   *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics

	mu        sync.Mutex
	listeners map[chan uuid.UUID]struct{}
}

// NewService creates record service. redisClient may be nil.
func NewService(repo Repository, redisClient *redis.Client, ttl time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		redis:     redisClient,
		ttl:       ttl,
		metrics:   m,
		listeners: make(map[chan uuid.UUID]struct{}),
	}
}

func cacheKey(id uuid.UUID) string {
	return "record:context:" + id.String()
}

// Get returns the record context, served from Redis when cached
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Context, error) {
	if c, ok := s.cached(ctx, id); ok {
		return c, nil
	}

	c, err := s.repo.GetContext(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrRecordNotFound
	}

	s.store(ctx, c)
	return c, nil
}

func (s *Service) cached(ctx context.Context, id uuid.UUID) (*Context, bool) {
	if s.redis == nil || s.ttl <= 0 {
		return nil, false
	}
	data, err := s.redis.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.LogWarn(ctx, "Record cache read failed", "error", err.Error())
		}
		s.metrics.ObserveCache(cacheName, false)
		return nil, false
	}

	var c Context
	if err := json.Unmarshal(data, &c); err != nil {
		s.metrics.ObserveCache(cacheName, false)
		return nil, false
	}
	s.metrics.ObserveCache(cacheName, true)
	logger.LogDebug(ctx, "Record context served from cache", "record_id", id.String())
	return &c, true
}

func (s *Service) store(ctx context.Context, c *Context) {
	if s.redis == nil || s.ttl <= 0 {
		return
	}
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(c.RecordID), data, s.ttl).Err(); err != nil {
		logger.LogWarn(ctx, "Record cache write failed", "error", err.Error())
	}
}

// MarkStale drops the cached context and announces that the record changed
func (s *Service) MarkStale(ctx context.Context, id uuid.UUID) error {
	if s.redis == nil {
		s.broadcast(id)
		return nil
	}

	if err := s.redis.Del(ctx, cacheKey(id)).Err(); err != nil {
		return err
	}
	return s.redis.Publish(ctx, UpdatedChannel, id.String()).Err()
}

// Subscribe streams ids of updated records until ctx is done
func (s *Service) Subscribe(ctx context.Context) <-chan uuid.UUID {
	out := make(chan uuid.UUID, 16)

	if s.redis == nil {
		s.mu.Lock()
		s.listeners[out] = struct{}{}
		s.mu.Unlock()

		go func() {
			<-ctx.Done()
			s.mu.Lock()
			delete(s.listeners, out)
			s.mu.Unlock()
			close(out)
		}()
		return out
	}

	pubsub := s.redis.Subscribe(ctx, UpdatedChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		logger.LogError(ctx, err, "Record update subscription failed")
	}
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				id, err := uuid.Parse(msg.Payload)
				if err != nil {
					logger.LogWarn(ctx, "Ignoring malformed record update", "payload", msg.Payload)
					continue
				}
				select {
				case out <- id:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func (s *Service) broadcast(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.listeners {
		select {
		case ch <- id:
		default:
		}
	}
}
