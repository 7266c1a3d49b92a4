package enquiry

import "github.com/google/uuid"

// SubmitRequest is the public enquiry form
type SubmitRequest struct {
	EnquiryType string `json:"enquiry_type" validate:"required,enquiry_type"`
	FirstName   string `json:"first_name" validate:"required,max=80"`
	LastName    string `json:"last_name" validate:"required,max=80"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Source      string `json:"source,omitempty" validate:"omitempty,max=100"`
	Message     string `json:"message,omitempty" validate:"omitempty,max=2000"`
	CareType    string `json:"care_type,omitempty" validate:"omitempty,care_type"`
	CareHomeID  string `json:"care_home_id,omitempty" validate:"omitempty,uuid"`
	Consent     bool   `json:"consent" validate:"required"`

	AdmissionType    string `json:"admission_type,omitempty" validate:"admission_type"`
	RespiteStartDate string `json:"respite_start_date,omitempty"`
	RespiteEndDate   string `json:"respite_end_date,omitempty"`

	// Loved one only
	ResidentName string `json:"resident_name,omitempty" validate:"omitempty,max=160"`
	Interests    string `json:"interests,omitempty" validate:"omitempty,max=2000"`
	Needs        string `json:"needs,omitempty" validate:"omitempty,max=2000"`
}

// IsLovedOne reports whether the enquiry is on behalf of someone else
func (r *SubmitRequest) IsLovedOne() bool {
	return r.EnquiryType == TypeLovedOne
}

// IsRespite reports whether respite dates apply
func (r *SubmitRequest) IsRespite() bool {
	return r.AdmissionType == AdmissionRespite
}

// SubmittedResponse is returned after a successful submission
type SubmittedResponse struct {
	EnquiryID uuid.UUID `json:"enquiry_id"`
	Reference string    `json:"reference"`
	Message   string    `json:"message"`
}

// PropertyOption is a care home the enquirer can choose
type PropertyOption struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
