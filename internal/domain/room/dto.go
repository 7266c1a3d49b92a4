package room

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Query describes one availability search
type Query struct {
	RecordID   uuid.UUID
	ResidentID *uuid.UUID
	PropertyID *uuid.UUID
	StartDate  civil.Date
	EndDate    *civil.Date
}

// Match is an available room ranked against the resident's preferences
type Match struct {
	ID             uuid.UUID `json:"id"`
	PropertyID     uuid.UUID `json:"property_id"`
	PropertyName   string    `json:"property_name"`
	Name           string    `json:"name"`
	BaseWeeklyRate float64   `json:"base_weekly_rate"`
	FormattedRate  string    `json:"formatted_rate,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	Ensuite        bool      `json:"ensuite"`
	GardenView     bool      `json:"garden_view"`
	GroundFloor    bool      `json:"ground_floor"`
	Score          int       `json:"match_score"`
}

// ImageResponse is returned after a room photo upload
type ImageResponse struct {
	RoomID   uuid.UUID `json:"room_id"`
	ImageKey string    `json:"image_key"`
	ImageURL string    `json:"image_url"`
}
