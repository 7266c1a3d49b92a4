package property

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Repository defines property data access
type Repository interface {
	List(ctx context.Context) ([]*Property, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates property repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// List returns every property with its count of rooms currently available
func (r *repository) List(ctx context.Context) ([]*Property, error) {
	query := `
		SELECT p.id, p.name, p.manager_name, p.postcode, p.care_types,
			p.latitude, p.longitude, p.image_url,
			COUNT(r.id) FILTER (WHERE r.status = 'available') AS available_rooms
		FROM properties p
		LEFT JOIN rooms r ON r.property_id = p.id
		GROUP BY p.id
		ORDER BY p.name
	`
	var props []*Property
	if err := r.db.SelectContext(ctx, &props, query); err != nil {
		return nil, err
	}
	return props, nil
}
