package survey

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/domain/record"
	"github.com/carehome/carehome-api/internal/pkg/logger"
)

// RecordLookup resolves the resident linked to an enquiry record
type RecordLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*record.Context, error)
}

// Service handles resident survey business logic
type Service struct {
	repo    Repository
	records RecordLookup
	now     func() time.Time
}

// NewService creates survey service
func NewService(repo Repository, records RecordLookup) *Service {
	return &Service{repo: repo, records: records, now: time.Now}
}

// InitialData returns the resident and active survey for recordID.
// record.ErrRecordNotFound is returned for an unknown record.
func (s *Service) InitialData(ctx context.Context, recordID uuid.UUID) (*InitialData, error) {
	rc, err := s.records.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.ActiveSurvey(ctx)
	if err != nil {
		return nil, err
	}
	return &InitialData{
		RecordID:    recordID,
		ResidentID:  rc.Resident(),
		Survey:      active,
		RatingScale: RatingScale,
	}, nil
}

// Submit stores a survey response stamped with today's date
func (s *Service) Submit(ctx context.Context, recordID uuid.UUID, req *SubmitRequest) (*Response, error) {
	rc, err := s.records.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.ActiveSurvey(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	resp := &Response{
		ID:                uuid.New(),
		RecordID:          recordID,
		ResidentID:        rc.ResidentID,
		FoodRating:        req.FoodRating,
		CleanlinessRating: req.CleanlinessRating,
		StaffRating:       req.StaffRating,
		ActivitiesRating:  req.ActivitiesRating,
		OverallRating:     req.OverallRating,
		ResponseDate:      civil.DateOf(now),
		CreatedAt:         now,
	}
	if comments := strings.TrimSpace(req.Comments); comments != "" {
		resp.Comments = sql.NullString{String: comments, Valid: true}
	}
	if active != nil {
		resp.SurveyID = uuid.NullUUID{UUID: active.ID, Valid: true}
	}

	if err := s.repo.CreateResponse(ctx, resp); err != nil {
		return nil, err
	}

	logger.LogInfo(ctx, "Survey response submitted",
		"response_id", resp.ID.String(), "record_id", recordID.String(), "overall_rating", resp.OverallRating)
	return resp, nil
}
