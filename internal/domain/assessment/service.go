package assessment

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/pkg/logger"
)

// Service handles medical assessment business logic
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates assessment service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create stores an assessment. Status defaults to Scheduled.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Assessment, error) {
	residentID, err := uuid.Parse(req.ResidentID)
	if err != nil {
		return nil, FieldErrors{"resident_id": "resident_id must be a valid UUID"}
	}
	typeID, err := uuid.Parse(req.AssessmentTypeID)
	if err != nil {
		return nil, FieldErrors{"assessment_type_id": "assessment_type_id must be a valid UUID"}
	}

	now := s.now().UTC()
	a := &Assessment{
		ID:               uuid.New(),
		ResidentID:       residentID,
		AssessmentTypeID: typeID,
		Status:           req.Status,
		RiskLevel:        nullString(req.RiskLevel),
		Outcome:          nullString(req.Outcome),
		Assessor:         nullString(req.Assessor),
		MedicalNeeds:     nullString(req.MedicalNeeds),
		Mobility:         nullString(req.Mobility),
		Nutrition:        nullString(req.Nutrition),
		MentalHealth:     nullString(req.MentalHealth),
		PersonalCare:     nullString(req.PersonalCare),
		SocialNeeds:      nullString(req.SocialNeeds),
		FollowUpRequired: req.FollowUpRequired,
		FollowUpNotes:    nullString(req.FollowUpNotes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}

	if req.RecordID != "" {
		id, err := uuid.Parse(req.RecordID)
		if err != nil {
			return nil, FieldErrors{"record_id": "record_id must be a valid UUID"}
		}
		a.RecordID = uuid.NullUUID{UUID: id, Valid: true}
	}
	if req.AssessmentDate != "" {
		d, err := civil.ParseDate(req.AssessmentDate)
		if err != nil {
			return nil, FieldErrors{"assessment_date": "assessment_date must be a date (YYYY-MM-DD)"}
		}
		a.AssessmentDate = &d
	}

	exists, err := s.repo.TypeExists(ctx, typeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTypeNotFound
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	logger.LogInfo(ctx, "Assessment created",
		"assessment_id", a.ID.String(), "resident_id", residentID.String(), "status", a.Status)
	return a, nil
}

// Types lists the assessment types offered on the form
func (s *Service) Types(ctx context.Context) ([]Type, error) {
	return s.repo.ListTypes(ctx)
}

// Residents lists the residents that can be assessed
func (s *Service) Residents(ctx context.Context) ([]ResidentOption, error) {
	return s.repo.ListResidents(ctx)
}

// ListByRecord returns the assessments linked to an enquiry record, newest first
func (s *Service) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Response, error) {
	assessments, err := s.repo.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	out := make([]*Response, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, ResponseFromEntity(a))
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
