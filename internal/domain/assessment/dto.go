package assessment

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest is the medical assessment form
type CreateRequest struct {
	ResidentID       string `json:"resident_id" validate:"required,uuid"`
	AssessmentTypeID string `json:"assessment_type_id" validate:"required,uuid"`
	RecordID         string `json:"record_id,omitempty" validate:"omitempty,uuid"`
	AssessmentDate   string `json:"assessment_date,omitempty"`
	Status           string `json:"status,omitempty" validate:"assessment_status"`
	RiskLevel        string `json:"risk_level,omitempty" validate:"risk_level"`
	Outcome          string `json:"overall_outcome,omitempty" validate:"assessment_outcome"`
	Assessor         string `json:"assessor,omitempty" validate:"omitempty,max=160"`

	MedicalNeeds string `json:"medical_needs,omitempty" validate:"omitempty,max=4000"`
	Mobility     string `json:"mobility,omitempty" validate:"omitempty,max=4000"`
	Nutrition    string `json:"nutrition,omitempty" validate:"omitempty,max=4000"`
	MentalHealth string `json:"mental_health,omitempty" validate:"omitempty,max=4000"`
	PersonalCare string `json:"personal_care,omitempty" validate:"omitempty,max=4000"`
	SocialNeeds  string `json:"social_needs,omitempty" validate:"omitempty,max=4000"`

	FollowUpRequired bool   `json:"follow_up_required"`
	FollowUpNotes    string `json:"follow_up_notes,omitempty" validate:"omitempty,max=2000"`
}

// Response is an assessment as returned by the API
type Response struct {
	ID               uuid.UUID  `json:"id"`
	ResidentID       uuid.UUID  `json:"resident_id"`
	AssessmentTypeID uuid.UUID  `json:"assessment_type_id"`
	RecordID         *uuid.UUID `json:"record_id,omitempty"`
	AssessmentDate   string     `json:"assessment_date,omitempty"`
	Status           string     `json:"status"`
	RiskLevel        string     `json:"risk_level,omitempty"`
	Outcome          string     `json:"overall_outcome,omitempty"`
	Assessor         string     `json:"assessor,omitempty"`
	MedicalNeeds     string     `json:"medical_needs,omitempty"`
	Mobility         string     `json:"mobility,omitempty"`
	Nutrition        string     `json:"nutrition,omitempty"`
	MentalHealth     string     `json:"mental_health,omitempty"`
	PersonalCare     string     `json:"personal_care,omitempty"`
	SocialNeeds      string     `json:"social_needs,omitempty"`
	FollowUpRequired bool       `json:"follow_up_required"`
	FollowUpNotes    string     `json:"follow_up_notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// CreatedResponse is returned after a successful submission
type CreatedResponse struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	Status       string    `json:"status"`
	Message      string    `json:"message"`
}

// ResponseFromEntity converts an assessment for the API
func ResponseFromEntity(a *Assessment) *Response {
	resp := &Response{
		ID:               a.ID,
		ResidentID:       a.ResidentID,
		AssessmentTypeID: a.AssessmentTypeID,
		Status:           a.Status,
		RiskLevel:        a.RiskLevel.String,
		Outcome:          a.Outcome.String,
		Assessor:         a.Assessor.String,
		MedicalNeeds:     a.MedicalNeeds.String,
		Mobility:         a.Mobility.String,
		Nutrition:        a.Nutrition.String,
		MentalHealth:     a.MentalHealth.String,
		PersonalCare:     a.PersonalCare.String,
		SocialNeeds:      a.SocialNeeds.String,
		FollowUpRequired: a.FollowUpRequired,
		FollowUpNotes:    a.FollowUpNotes.String,
		CreatedAt:        a.CreatedAt,
	}
	if a.RecordID.Valid {
		id := a.RecordID.UUID
		resp.RecordID = &id
	}
	if a.AssessmentDate != nil {
		resp.AssessmentDate = a.AssessmentDate.String()
	}
	return resp
}
