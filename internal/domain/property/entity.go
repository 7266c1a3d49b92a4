package property

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Property is a care home
type Property struct {
	ID             uuid.UUID       `db:"id"`
	Name           string          `db:"name"`
	ManagerName    sql.NullString  `db:"manager_name"`
	Postcode       string          `db:"postcode"`
	CareTypes      pq.StringArray  `db:"care_types"`
	AvailableRooms int             `db:"available_rooms"`
	Latitude       sql.NullFloat64 `db:"latitude"`
	Longitude      sql.NullFloat64 `db:"longitude"`
	ImageURL       sql.NullString  `db:"image_url"`
}

// Offers reports whether the property provides any of the given care types
func (p *Property) Offers(careTypes []string) bool {
	for _, want := range careTypes {
		for _, have := range p.CareTypes {
			if want == have {
				return true
			}
		}
	}
	return false
}

// HasLocation reports whether coordinates are recorded
func (p *Property) HasLocation() bool {
	return p.Latitude.Valid && p.Longitude.Valid
}
