package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carehome/carehome-api/internal/pkg/logger"
)

// Repository stores the notification history of a record
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecord(ctx context.Context, recordID uuid.UUID, limit int) ([]*Notification, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	q := `
		INSERT INTO record_notifications (id, record_id, title, message, severity, created_at)
		VALUES (:id, :record_id, :title, :message, :severity, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, q, n)
	return err
}

func (r *repository) ListByRecord(ctx context.Context, recordID uuid.UUID, limit int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := `
		SELECT id, record_id, title, message, severity, created_at
		FROM record_notifications
		WHERE record_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	var items []*Notification
	if err := r.db.SelectContext(ctx, &items, q, recordID, limit); err != nil {
		return nil, err
	}
	return items, nil
}

// Store persists notifications as a Sink. Failures are logged, never returned.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) Notify(ctx context.Context, n Notification) {
	if s == nil || s.repo == nil || n.RecordID == uuid.Nil {
		return
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		logger.LogError(ctx, err, "Failed to store notification", "record_id", n.RecordID.String())
	}
}

// History lists the latest notifications of a record
func (s *Store) History(ctx context.Context, recordID uuid.UUID, limit int) ([]*Notification, error) {
	items, err := s.repo.ListByRecord(ctx, recordID, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Notification{}
	}
	return items, nil
}
