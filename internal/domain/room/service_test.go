package room

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carehome/carehome-api/internal/pkg/imaging"
	"github.com/carehome/carehome-api/internal/pkg/metrics"
)

type fakeRepo struct {
	mu        sync.Mutex
	rooms     []*Room
	prefs     map[uuid.UUID]*Preferences
	findErr   error
	findCalls int
	imageKeys map[uuid.UUID]string
}

func (f *fakeRepo) FindAvailable(ctx context.Context, propertyID *uuid.UUID, start civil.Date, end *civil.Date) ([]*Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []*Room
	for _, r := range f.rooms {
		if propertyID == nil || r.PropertyID == *propertyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	for _, r := range f.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Preferences(ctx context.Context, residentID uuid.UUID) (*Preferences, error) {
	return f.prefs[residentID], nil
}

func (f *fakeRepo) SetImageKey(ctx context.Context, id uuid.UUID, key string) error {
	if f.imageKeys == nil {
		f.imageKeys = map[uuid.UUID]string{}
	}
	f.imageKeys[id] = key
	return nil
}

func (f *fakeRepo) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return map[Status]int{}, nil
}

func (f *fakeRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findCalls
}

type fakeImages struct {
	puts    map[string]string
	deleted []string
}

func (f *fakeImages) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if f.puts == nil {
		f.puts = map[string]string{}
	}
	f.puts[key] = contentType
	return nil
}

func (f *fakeImages) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeImages) URL(ctx context.Context, key string) (string, error) {
	return "https://img.example.com/" + key, nil
}

var (
	propertyID = uuid.New()
	start      = civil.Date{Year: 2024, Month: time.June, Day: 1}
)

func sampleRooms() []*Room {
	return []*Room{
		{ID: uuid.New(), PropertyID: propertyID, PropertyName: "Willow House", Name: "Oak", BaseWeeklyRate: 900, GroundFloor: true},
		{ID: uuid.New(), PropertyID: propertyID, PropertyName: "Willow House", Name: "Rose", BaseWeeklyRate: 950, Ensuite: true, GardenView: true,
			ImageKey: sql.NullString{String: "rooms/rose.jpg", Valid: true}},
		{ID: uuid.New(), PropertyID: propertyID, PropertyName: "Willow House", Name: "Elm", BaseWeeklyRate: 900, Ensuite: true},
	}
}

func newTestService(t *testing.T, repo *fakeRepo) (*Service, *miniredis.Miniredis, *prometheus.Registry) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	reg := prometheus.NewRegistry()
	return NewService(repo, &fakeImages{}, client, time.Minute, nil, metrics.New(reg)), mr, reg
}

func names(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Name
	}
	return out
}

func TestSearchOrdersByRateThenNameWithoutResident(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeRepo{rooms: sampleRooms()})

	matches, err := svc.FindRooms(context.Background(), uuid.New(), nil, start)

	require.NoError(t, err)
	assert.Equal(t, []string{"Elm", "Oak", "Rose"}, names(matches))
	assert.Equal(t, "£900.00", matches[0].FormattedRate)
	assert.Equal(t, "https://img.example.com/rooms/rose.jpg", matches[2].ImageURL)
	assert.Empty(t, matches[0].ImageURL)
}

func TestSearchAppliesResidentPreferences(t *testing.T) {
	residentID := uuid.New()
	repo := &fakeRepo{
		rooms: sampleRooms(),
		prefs: map[uuid.UUID]*Preferences{residentID: {RequiresEnsuite: true, PrefersGardenView: true}},
	}
	svc, _, _ := newTestService(t, repo)

	matches, err := svc.FindRooms(context.Background(), uuid.New(), &residentID, start)

	require.NoError(t, err)
	assert.Equal(t, []string{"Rose", "Elm"}, names(matches))
	assert.Equal(t, 3, matches[0].Score)
	assert.Equal(t, 2, matches[1].Score)
}

func TestSearchUsesCacheUntilInvalidated(t *testing.T) {
	repo := &fakeRepo{rooms: sampleRooms()}
	svc, _, reg := newTestService(t, repo)
	ctx := context.Background()
	recordID := uuid.New()

	_, err := svc.FindRooms(ctx, recordID, nil, start)
	require.NoError(t, err)
	cached, err := svc.FindRooms(ctx, recordID, nil, start)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls())
	assert.Len(t, cached, 3)
	assert.Equal(t, float64(1), cacheLookups(t, reg, "true"))
	assert.Equal(t, float64(1), cacheLookups(t, reg, "false"))

	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.FindRooms(ctx, recordID, nil, start)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls())
}

func cacheLookups(t *testing.T, reg *prometheus.Registry, hit string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "carehome_cache_lookups_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "hit" && l.GetValue() == hit {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestSearchWithoutRedisAlwaysQueries(t *testing.T) {
	repo := &fakeRepo{rooms: sampleRooms()}
	svc := NewService(repo, nil, nil, time.Minute, nil, nil)

	_, _ = svc.Search(context.Background(), Query{StartDate: start})
	_, _ = svc.Search(context.Background(), Query{StartDate: start})

	assert.Equal(t, 2, repo.calls())
	assert.NoError(t, svc.Invalidate(context.Background()))
}

func TestSearchFailureCarriesUserMessage(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeRepo{findErr: errors.New("connection refused")})

	_, err := svc.FindRooms(context.Background(), uuid.New(), nil, start)

	var roomErr *Error
	require.ErrorAs(t, err, &roomErr)
	assert.Equal(t, "SEARCH_FAILED", roomErr.ErrorCode())
	assert.NotContains(t, roomErr.UserMessage(), "connection refused")
}

func TestSearchRejectsInvalidRange(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeRepo{})
	end := start.AddDays(-1)

	_, err := svc.Search(context.Background(), Query{StartDate: start, EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.Search(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestUploadImageReplacesPreviousImage(t *testing.T) {
	rooms := sampleRooms()
	repo := &fakeRepo{rooms: rooms}
	images := &fakeImages{}
	svc := NewService(repo, images, nil, 0, nil, nil)

	resp, err := svc.UploadImage(context.Background(), rooms[1].ID, bytes.NewReader(testPNG(t)))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ImageKey, "rooms/"+rooms[1].ID.String()+"/"))
	assert.True(t, strings.HasSuffix(resp.ImageKey, ".png"))
	assert.Equal(t, "image/png", images.puts[resp.ImageKey])
	assert.Equal(t, resp.ImageKey, repo.imageKeys[rooms[1].ID])
	assert.Equal(t, []string{"rooms/rose.jpg"}, images.deleted)
	assert.Equal(t, "https://img.example.com/"+resp.ImageKey, resp.ImageURL)
}

func TestUploadImageErrors(t *testing.T) {
	repo := &fakeRepo{rooms: sampleRooms()}

	_, err := NewService(repo, nil, nil, 0, nil, nil).UploadImage(context.Background(), uuid.New(), strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	images := &fakeImages{}
	svc := NewService(repo, images, nil, 0, nil, nil)
	_, err = svc.UploadImage(context.Background(), uuid.New(), strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	corrupt := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	_, err = svc.UploadImage(context.Background(), repo.rooms[0].ID, bytes.NewReader(corrupt))
	assert.ErrorIs(t, err, imaging.ErrUndecodable)
	assert.Empty(t, images.puts)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))))
	return buf.Bytes()
}
