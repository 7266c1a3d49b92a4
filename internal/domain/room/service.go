package room

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/carehome/carehome-api/internal/pkg/imaging"
	"github.com/carehome/carehome-api/internal/pkg/logger"
	"github.com/carehome/carehome-api/internal/pkg/metrics"
	"github.com/carehome/carehome-api/internal/pkg/money"
	"github.com/carehome/carehome-api/internal/pkg/storage"
)

const (
	cacheName       = "room_search"
	cacheVersionKey = "rooms:search:version"
)

// Service handles room search
type Service struct {
	repo      Repository
	images    storage.Images
	redis     *redis.Client
	ttl       time.Duration
	formatter *money.Formatter
	metrics   *metrics.Metrics
	processor *imaging.Processor
}

// NewService creates room service. images and redisClient may be nil.
func NewService(repo Repository, images storage.Images, redisClient *redis.Client, ttl time.Duration, formatter *money.Formatter, m *metrics.Metrics) *Service {
	if formatter == nil {
		formatter = money.Must("GBP", "en-GB")
	}
	return &Service{
		repo:      repo,
		images:    images,
		redis:     redisClient,
		ttl:       ttl,
		formatter: formatter,
		metrics:   m,
		processor: imaging.NewProcessor(imaging.DefaultConfig()),
	}
}

// FindRooms searches rooms for a room finder session
func (s *Service) FindRooms(ctx context.Context, recordID uuid.UUID, residentID *uuid.UUID, startDate civil.Date) ([]Match, error) {
	return s.Search(ctx, Query{RecordID: recordID, ResidentID: residentID, StartDate: startDate})
}

// Search returns available rooms ranked by preference score, then rate, then name
func (s *Service) Search(ctx context.Context, q Query) ([]Match, error) {
	if !q.StartDate.IsValid() {
		return nil, ErrInvalidQuery
	}
	if q.EndDate != nil && q.EndDate.Before(q.StartDate) {
		return nil, ErrInvalidQuery
	}

	key := s.cacheKey(ctx, q)
	if matches, ok := s.cached(ctx, key); ok {
		return matches, nil
	}

	var prefs *Preferences
	if q.ResidentID != nil {
		p, err := s.repo.Preferences(ctx, *q.ResidentID)
		if err != nil {
			return nil, searchFailed(err)
		}
		prefs = p
	}

	rooms, err := s.repo.FindAvailable(ctx, q.PropertyID, q.StartDate, q.EndDate)
	if err != nil {
		return nil, searchFailed(err)
	}

	matches := make([]Match, 0, len(rooms))
	for _, r := range rooms {
		score, ok := r.Score(prefs)
		if !ok {
			continue
		}
		matches = append(matches, Match{
			ID:             r.ID,
			PropertyID:     r.PropertyID,
			PropertyName:   r.PropertyName,
			Name:           r.Name,
			BaseWeeklyRate: r.BaseWeeklyRate,
			FormattedRate:  s.formatter.Format(r.BaseWeeklyRate),
			ImageURL:       s.imageURL(ctx, r),
			Ensuite:        r.Ensuite,
			GardenView:     r.GardenView,
			GroundFloor:    r.GroundFloor,
			Score:          score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.BaseWeeklyRate != b.BaseWeeklyRate {
			return a.BaseWeeklyRate < b.BaseWeeklyRate
		}
		return a.Name < b.Name
	})

	s.store(ctx, key, matches)
	return matches, nil
}

func (s *Service) imageURL(ctx context.Context, r *Room) string {
	if !r.ImageKey.Valid || s.images == nil {
		return ""
	}
	url, err := s.images.URL(ctx, r.ImageKey.String)
	if err != nil {
		logger.LogError(ctx, err, "Failed to resolve room image", "room_id", r.ID.String())
		return ""
	}
	return url
}

// Invalidate drops every cached search by bumping the cache version
func (s *Service) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Incr(ctx, cacheVersionKey).Err()
}

// UploadImage validates and stores a room photo, then links it to the room
func (s *Service) UploadImage(ctx context.Context, roomID uuid.UUID, file io.Reader) (*ImageResponse, error) {
	if s.images == nil {
		return nil, ErrStorageUnavailable
	}

	room, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	buf, mimeType, err := storage.ValidateImage(file, storage.MaxImageSize)
	if err != nil {
		return nil, err
	}
	data, err := s.processor.Fit(buf.Bytes(), mimeType)
	if err != nil {
		return nil, err
	}

	key := path.Join("rooms", roomID.String(), uuid.NewString()+storage.ExtensionFor(mimeType))
	if err := s.images.Put(ctx, key, bytes.NewReader(data), mimeType); err != nil {
		return nil, err
	}
	if err := s.repo.SetImageKey(ctx, roomID, key); err != nil {
		_ = s.images.Delete(ctx, key)
		return nil, err
	}
	if room.ImageKey.Valid && room.ImageKey.String != "" {
		if err := s.images.Delete(ctx, room.ImageKey.String); err != nil {
			logger.LogWarn(ctx, "Failed to delete previous room image", "key", room.ImageKey.String, "error", err.Error())
		}
	}
	if err := s.Invalidate(ctx); err != nil {
		logger.LogWarn(ctx, "Failed to invalidate room search cache", "error", err.Error())
	}

	url, err := s.images.URL(ctx, key)
	if err != nil {
		return nil, err
	}
	return &ImageResponse{RoomID: roomID, ImageKey: key, ImageURL: url}, nil
}

func (s *Service) cacheKey(ctx context.Context, q Query) string {
	if s.redis == nil || s.ttl <= 0 {
		return ""
	}
	version, err := s.redis.Get(ctx, cacheVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.LogWarn(ctx, "Room search cache unavailable", "error", err.Error())
		return ""
	}

	key := fmt.Sprintf("rooms:search:v%d:%s:%s:%s:%s", version, q.RecordID, optional(q.ResidentID), optional(q.PropertyID), q.StartDate)
	if q.EndDate != nil {
		key += ":" + q.EndDate.String()
	}
	return key
}

func (s *Service) cached(ctx context.Context, key string) ([]Match, bool) {
	if key == "" {
		return nil, false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.LogWarn(ctx, "Room search cache read failed", "error", err.Error())
		}
		s.metrics.ObserveCache(cacheName, false)
		return nil, false
	}

	var matches []Match
	if err := json.Unmarshal(data, &matches); err != nil {
		s.metrics.ObserveCache(cacheName, false)
		return nil, false
	}
	s.metrics.ObserveCache(cacheName, true)
	return matches, true
}

func (s *Service) store(ctx context.Context, key string, matches []Match) {
	if key == "" {
		return
	}
	data, err := json.Marshal(matches)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		logger.LogWarn(ctx, "Room search cache write failed", "error", err.Error())
	}
}

func optional(id *uuid.UUID) string {
	if id == nil {
		return "-"
	}
	return id.String()
}
