package survey

import (
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Survey is a questionnaire residents are asked to complete
type Survey struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// Response is one resident's ratings, stored against the enquiry record
type Response struct {
	ID                uuid.UUID      `db:"id"`
	RecordID          uuid.UUID      `db:"record_id"`
	ResidentID        uuid.NullUUID  `db:"resident_id"`
	SurveyID          uuid.NullUUID  `db:"survey_id"`
	FoodRating        int            `db:"food_rating"`
	CleanlinessRating int            `db:"cleanliness_rating"`
	StaffRating       int            `db:"staff_rating"`
	ActivitiesRating  int            `db:"activities_rating"`
	OverallRating     int            `db:"overall_rating"`
	Comments          sql.NullString `db:"comments"`
	ResponseDate      civil.Date     `db:"response_date"`
	CreatedAt         time.Time      `db:"created_at"`
}
