package survey

import "github.com/google/uuid"

// RatingScale is the set of values offered for every rating
var RatingScale = []int{1, 2, 3, 4, 5}

// SubmitRequest carries the five ratings. All of them are required.
type SubmitRequest struct {
	FoodRating        int    `json:"food_rating" validate:"required,gte=1,lte=5"`
	CleanlinessRating int    `json:"cleanliness_rating" validate:"required,gte=1,lte=5"`
	StaffRating       int    `json:"staff_rating" validate:"required,gte=1,lte=5"`
	ActivitiesRating  int    `json:"activities_rating" validate:"required,gte=1,lte=5"`
	OverallRating     int    `json:"overall_rating" validate:"required,gte=1,lte=5"`
	Comments          string `json:"comments,omitempty" validate:"omitempty,max=2000"`
}

// InitialData pre-fills the survey form for a record
type InitialData struct {
	RecordID    uuid.UUID  `json:"record_id"`
	ResidentID  *uuid.UUID `json:"resident_id"`
	Survey      *Survey    `json:"survey"`
	RatingScale []int      `json:"rating_scale"`
}

// SubmittedResponse is returned after a successful submission
type SubmittedResponse struct {
	ResponseID   uuid.UUID `json:"response_id"`
	ResponseDate string    `json:"response_date"`
	Message      string    `json:"message"`
}
