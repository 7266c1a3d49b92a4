package property

import (
	"context"
	"sort"

	"github.com/umahmood/haversine"
)

// Service handles property listing for the map
type Service struct {
	repo Repository
}

// NewService creates property service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListQuery narrows the property list
type ListQuery struct {
	CareTypes []string
	Near      *haversine.Coord
}

// List returns properties offering any of the requested care types.
// With Near set, properties are ordered by distance and those without coordinates go last.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Response, error) {
	props, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterByCareTypes(props, q.CareTypes)
	out := make([]Response, 0, len(filtered))
	for _, p := range filtered {
		resp := ResponseFromEntity(p)
		if q.Near != nil && p.HasLocation() {
			miles, _ := haversine.Distance(*q.Near, haversine.Coord{Lat: p.Latitude.Float64, Lon: p.Longitude.Float64})
			resp.DistanceMiles = &miles
		}
		out = append(out, resp)
	}

	if q.Near != nil {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DistanceMiles, out[j].DistanceMiles
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			}
			return *a < *b
		})
	}
	return out, nil
}

// Markers returns the map markers for the filtered properties
func (s *Service) Markers(ctx context.Context, q ListQuery) ([]Marker, error) {
	props, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	markers := make([]Marker, len(props))
	for i, p := range props {
		markers[i] = MarkerFromResponse(p)
	}
	return markers, nil
}

// FilterByCareTypes keeps properties offering any selected type. An empty selection keeps all.
func FilterByCareTypes(props []*Property, careTypes []string) []*Property {
	if len(careTypes) == 0 {
		return props
	}
	out := make([]*Property, 0, len(props))
	for _, p := range props {
		if p.Offers(careTypes) {
			out = append(out, p)
		}
	}
	return out
}
