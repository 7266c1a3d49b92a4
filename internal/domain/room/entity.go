package room

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status of a room
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

// Room is a bookable bedroom in a care home
type Room struct {
	ID             uuid.UUID      `db:"id"`
	PropertyID     uuid.UUID      `db:"property_id"`
	PropertyName   string         `db:"property_name"`
	Name           string         `db:"name"`
	BaseWeeklyRate float64        `db:"base_weekly_rate"`
	ImageKey       sql.NullString `db:"image_key"`
	Ensuite        bool           `db:"ensuite"`
	GardenView     bool           `db:"garden_view"`
	GroundFloor    bool           `db:"ground_floor"`
	Status         Status         `db:"status"`
	CreatedAt      time.Time      `db:"created_at"`
}

// Preferences are the accommodation needs recorded against a resident
type Preferences struct {
	ResidentID          uuid.UUID `db:"resident_id"`
	RequiresEnsuite     bool      `db:"requires_ensuite"`
	PrefersGardenView   bool      `db:"prefers_garden_view"`
	RequiresGroundFloor bool      `db:"requires_ground_floor"`
}

const (
	scoreEnsuite     = 2
	scoreGroundFloor = 2
	scoreGardenView  = 1
)

// Score returns how well the room fits p and whether it is eligible at all.
// A room missing a required feature is not eligible.
func (r *Room) Score(p *Preferences) (int, bool) {
	if p == nil {
		return 0, true
	}
	if p.RequiresEnsuite && !r.Ensuite {
		return 0, false
	}
	if p.RequiresGroundFloor && !r.GroundFloor {
		return 0, false
	}

	score := 0
	if p.RequiresEnsuite {
		score += scoreEnsuite
	}
	if p.RequiresGroundFloor {
		score += scoreGroundFloor
	}
	if p.PrefersGardenView && r.GardenView {
		score += scoreGardenView
	}
	return score, true
}
