package record

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Context is the part of an enquiry record the room finder pre-fills from
type Context struct {
	RecordID   uuid.UUID     `db:"id" json:"record_id"`
	ResidentID uuid.NullUUID `db:"resident_id" json:"resident_id"`
	StartDate  *civil.Date   `db:"respite_start_date" json:"start_date,omitempty"`
	EndDate    *civil.Date   `db:"respite_end_date" json:"end_date,omitempty"`
	Status     string        `db:"status" json:"status"`
}

// Resident returns the linked resident id, or nil
func (c *Context) Resident() *uuid.UUID {
	if !c.ResidentID.Valid {
		return nil
	}
	id := c.ResidentID.UUID
	return &id
}
