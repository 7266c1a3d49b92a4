package enquiry

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/pkg/email"
	"github.com/carehome/carehome-api/internal/pkg/logger"
)

// Mailer sends enquiry emails
type Mailer interface {
	SendEnquiryReceived(to string, data email.EnquiryEmail)
	SendEnquiryAlert(to string, data email.EnquiryEmail)
}

// Service handles enquiry business logic
type Service struct {
	repo       Repository
	mailer     Mailer
	admissions string
	now        func() time.Time
}

// NewService creates enquiry service. mailer may be nil when email is not configured.
func NewService(repo Repository, mailer Mailer, admissionsEmail string) *Service {
	return &Service{
		repo:       repo,
		mailer:     mailer,
		admissions: admissionsEmail,
		now:        time.Now,
	}
}

// Submit stores a public enquiry. Fields that do not apply to the enquiry type are discarded.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest, ip, userAgent string) (*Enquiry, error) {
	now := s.now().UTC()

	e := &Enquiry{
		ID:            uuid.New(),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         nullString(req.Phone),
		EnquiryType:   req.EnquiryType,
		CareType:      nullString(req.CareType),
		AdmissionType: nullString(req.AdmissionType),
		Source:        nullString(req.Source),
		Message:       nullString(req.Message),
		Status:        StatusNew,
		IPAddress:     nullString(ip),
		UserAgent:     nullString(userAgent),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if req.IsLovedOne() {
		e.ResidentName = nullString(req.ResidentName)
		e.Interests = nullString(req.Interests)
		e.Needs = nullString(req.Needs)
	}

	if req.IsRespite() {
		start, end, err := respiteDates(req.RespiteStartDate, req.RespiteEndDate)
		if err != nil {
			return nil, err
		}
		e.RespiteStartDate, e.RespiteEndDate = start, end
	}

	var propertyName string
	if req.CareHomeID != "" {
		id, err := uuid.Parse(req.CareHomeID)
		if err != nil {
			return nil, FieldErrors{"care_home_id": "care_home_id must be a valid UUID"}
		}
		propertyName, err = s.repo.PropertyName(ctx, id)
		if err != nil {
			return nil, err
		}
		if propertyName == "" {
			return nil, ErrPropertyNotFound
		}
		e.PropertyID = uuid.NullUUID{UUID: id, Valid: true}
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	logger.LogInfo(ctx, "Enquiry submitted", "enquiry_id", e.ID.String(), "enquiry_type", e.EnquiryType)

	if s.mailer != nil {
		data := email.EnquiryEmail{
			ContactName:  e.ContactName(),
			EnquiryType:  e.EnquiryType,
			CareType:     e.CareType.String,
			PropertyName: propertyName,
			ResidentName: e.ResidentName.String,
			Reference:    e.Reference(),
		}
		s.mailer.SendEnquiryReceived(e.Email, data)
		if s.admissions != "" {
			s.mailer.SendEnquiryAlert(s.admissions, data)
		}
	}

	return e, nil
}

// respiteDates parses the optional respite window. The end may be open.
func respiteDates(startValue, endValue string) (*civil.Date, *civil.Date, error) {
	errs := FieldErrors{}
	var start, end *civil.Date

	if startValue == "" {
		errs["respite_start_date"] = "respite_start_date is required for respite admissions"
	} else if d, err := civil.ParseDate(startValue); err != nil {
		errs["respite_start_date"] = "respite_start_date must be a date (YYYY-MM-DD)"
	} else {
		start = &d
	}

	if endValue != "" {
		if d, err := civil.ParseDate(endValue); err != nil {
			errs["respite_end_date"] = "respite_end_date must be a date (YYYY-MM-DD)"
		} else {
			end = &d
		}
	}

	if start != nil && end != nil && end.Before(*start) {
		errs["respite_end_date"] = "respite_end_date cannot be before respite_start_date"
	}
	if len(errs) > 0 {
		return nil, nil, errs
	}
	return start, end, nil
}

// Properties lists the care homes offered on the form
func (s *Service) Properties(ctx context.Context) ([]PropertyOption, error) {
	return s.repo.ListPropertyOptions(ctx)
}

// CountByStatus returns enquiry counts per pipeline stage
func (s *Service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx)
}

func nullString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}
