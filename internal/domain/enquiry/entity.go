package enquiry

import (
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Status is the pipeline stage of an enquiry
type Status string

const (
	StatusNew        Status = "new"
	StatusContacted  Status = "contacted"
	StatusAssessment Status = "assessment"
	StatusProposal   Status = "proposal"
	StatusBooked     Status = "booked"
	StatusLost       Status = "lost"
)

// PipelineStages are the open and won stages, in funnel order
var PipelineStages = []Status{StatusNew, StatusContacted, StatusAssessment, StatusProposal, StatusBooked}

// Label returns the stage name shown on dashboards
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusContacted:
		return "Contacted"
	case StatusAssessment:
		return "Assessment"
	case StatusProposal:
		return "Proposal"
	case StatusBooked:
		return "Booked"
	case StatusLost:
		return "Lost"
	}
	return string(s)
}

const (
	TypeLovedOne = "Looking for care for a loved one"
	TypeMyself   = "Looking for care for myself"

	AdmissionRespite = "First Respite"
)

// Enquiry is a prospective resident enquiry. It is the record the room finder books against.
type Enquiry struct {
	ID               uuid.UUID      `db:"id"`
	FirstName        string         `db:"first_name"`
	LastName         string         `db:"last_name"`
	Email            string         `db:"email"`
	Phone            sql.NullString `db:"phone"`
	EnquiryType      string         `db:"enquiry_type"`
	CareType         sql.NullString `db:"care_type"`
	AdmissionType    sql.NullString `db:"admission_type"`
	Source           sql.NullString `db:"source"`
	Message          sql.NullString `db:"message"`
	ResidentName     sql.NullString `db:"resident_name"`
	Interests        sql.NullString `db:"interests"`
	Needs            sql.NullString `db:"needs"`
	RespiteStartDate *civil.Date    `db:"respite_start_date"`
	RespiteEndDate   *civil.Date    `db:"respite_end_date"`
	PropertyID       uuid.NullUUID  `db:"property_id"`
	ResidentID       uuid.NullUUID  `db:"resident_id"`
	Status           Status         `db:"status"`
	IPAddress        sql.NullString `db:"ip_address"`
	UserAgent        sql.NullString `db:"user_agent"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// ContactName returns the enquirer's full name
func (e *Enquiry) ContactName() string {
	return e.FirstName + " " + e.LastName
}

// Reference is the short id quoted to the enquirer
func (e *Enquiry) Reference() string {
	return "ENQ-" + e.ID.String()[:8]
}
