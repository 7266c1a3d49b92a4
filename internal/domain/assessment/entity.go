package assessment

import (
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// StatusScheduled is the status of a new assessment unless one is given
const StatusScheduled = "Scheduled"

// Assessment is a pre-admission medical assessment of a resident
type Assessment struct {
	ID               uuid.UUID      `db:"id"`
	ResidentID       uuid.UUID      `db:"resident_id"`
	AssessmentTypeID uuid.UUID      `db:"assessment_type_id"`
	RecordID         uuid.NullUUID  `db:"record_id"`
	AssessmentDate   *civil.Date    `db:"assessment_date"`
	Status           string         `db:"status"`
	RiskLevel        sql.NullString `db:"risk_level"`
	Outcome          sql.NullString `db:"overall_outcome"`
	Assessor         sql.NullString `db:"assessor"`
	MedicalNeeds     sql.NullString `db:"medical_needs"`
	Mobility         sql.NullString `db:"mobility"`
	Nutrition        sql.NullString `db:"nutrition"`
	MentalHealth     sql.NullString `db:"mental_health"`
	PersonalCare     sql.NullString `db:"personal_care"`
	SocialNeeds      sql.NullString `db:"social_needs"`
	FollowUpRequired bool           `db:"follow_up_required"`
	FollowUpNotes    sql.NullString `db:"follow_up_notes"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// Type is a kind of assessment, such as a nursing needs review
type Type struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// ResidentOption is a resident that can be assessed
type ResidentOption struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
