package notification

import (
	"time"

	"github.com/google/uuid"
)

// Severity of a user-facing notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Notification is a toast surfaced to the user working on a record
type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RecordID  uuid.UUID `db:"record_id" json:"record_id"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Severity  Severity  `db:"severity" json:"severity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// New builds a notification stamped with a fresh id and the current time
func New(recordID uuid.UUID, severity Severity, title, message string) Notification {
	return Notification{
		ID:        uuid.New(),
		RecordID:  recordID,
		Title:     title,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}
}

// EventType of a websocket frame
type EventType string

const (
	EventNotification  EventType = "notification"
	EventRecordUpdated EventType = "record_updated"
)

// Event is the frame pushed to websocket clients watching a record
type Event struct {
	Type         EventType     `json:"type"`
	RecordID     uuid.UUID     `json:"record_id"`
	Notification *Notification `json:"notification,omitempty"`
}
