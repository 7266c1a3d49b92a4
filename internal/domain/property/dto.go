package property

import (
	"fmt"
	"html"

	"github.com/google/uuid"
)

// Response is a property as returned by the API
type Response struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ManagerName    string    `json:"manager_name,omitempty"`
	Postcode       string    `json:"postcode"`
	CareTypes      []string  `json:"care_types"`
	AvailableRooms int       `json:"available_rooms"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	DistanceMiles  *float64  `json:"distance_miles,omitempty"`
}

// ResponseFromEntity converts entity to response
func ResponseFromEntity(p *Property) Response {
	resp := Response{
		ID:             p.ID,
		Name:           p.Name,
		ManagerName:    p.ManagerName.String,
		Postcode:       p.Postcode,
		CareTypes:      []string(p.CareTypes),
		AvailableRooms: p.AvailableRooms,
		ImageURL:       p.ImageURL.String,
	}
	if resp.CareTypes == nil {
		resp.CareTypes = []string{}
	}
	if p.HasLocation() {
		lat, lng := p.Latitude.Float64, p.Longitude.Float64
		resp.Latitude, resp.Longitude = &lat, &lng
	}
	return resp
}

// MarkerLocation is a map marker address
type MarkerLocation struct {
	PostalCode string  `json:"PostalCode"`
	Country    string  `json:"Country"`
	Latitude   float64 `json:"Latitude,omitempty"`
	Longitude  float64 `json:"Longitude,omitempty"`
}

// Marker is a map pin for a property
type Marker struct {
	Location    MarkerLocation `json:"location"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
}

// MarkerIcon is the icon used for every care home pin
const MarkerIcon = "standard:home"

// MarkerFromResponse builds the map marker for a property
func MarkerFromResponse(p Response) Marker {
	m := Marker{
		Location: MarkerLocation{PostalCode: p.Postcode, Country: "UK"},
		Title:    p.Name,
		Description: fmt.Sprintf(
			"<p><strong>Manager:</strong> %s</p><p><strong>Available Rooms:</strong> %d</p><p><strong>Address:</strong> %s</p>",
			html.EscapeString(p.ManagerName), p.AvailableRooms, html.EscapeString(p.Postcode),
		),
		Icon: MarkerIcon,
	}
	if p.Latitude != nil && p.Longitude != nil {
		m.Location.Latitude, m.Location.Longitude = *p.Latitude, *p.Longitude
	}
	return m
}
