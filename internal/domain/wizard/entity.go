package wizard

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Step is the active phase of the room finder
type Step string

const (
	StepSearch  Step = "search"
	StepConfirm Step = "confirm"
)

// RoomOption is a candidate room returned by a search
type RoomOption struct {
	RoomID         string  `json:"room_id"`
	Name           string  `json:"name"`
	PropertyName   string  `json:"property_name,omitempty"`
	BaseWeeklyRate float64 `json:"base_weekly_rate"`
	DisplayImage   string  `json:"display_image,omitempty"`
	Ensuite        bool    `json:"ensuite"`
	GardenView     bool    `json:"garden_view"`
	GroundFloor    bool    `json:"ground_floor"`
	MatchScore     int     `json:"match_score"`
	FormattedRate  string  `json:"formatted_rate"`
}

// BookingRequest is submitted once per confirmation
type BookingRequest struct {
	RecordID   uuid.UUID
	RoomID     string
	FinalPrice float64
	StartDate  civil.Date
	EndDate    *civil.Date
}

// RecordContext holds the fields pre-filled from the host enquiry record
type RecordContext struct {
	RecordID   uuid.UUID
	ResidentID *uuid.UUID
	StartDate  *civil.Date
	EndDate    *civil.Date
}

// View is the state a client renders
type View struct {
	RecordID            uuid.UUID    `json:"record_id"`
	Step                Step         `json:"step"`
	IsStep1             bool         `json:"is_step1"`
	IsStep2             bool         `json:"is_step2"`
	Busy                bool         `json:"busy"`
	Booked              bool         `json:"booked"`
	Searched            bool         `json:"searched"`
	ResidentID          *uuid.UUID   `json:"resident_id,omitempty"`
	StartDate           string       `json:"start_date,omitempty"`
	EndDate             string       `json:"end_date,omitempty"`
	Rooms               []RoomOption `json:"rooms"`
	NoRooms             bool         `json:"no_rooms"`
	SelectedRoom        *RoomOption  `json:"selected_room,omitempty"`
	FinalPrice          *float64     `json:"final_price,omitempty"`
	FormattedFinalPrice string       `json:"formatted_final_price,omitempty"`
}
