package dashboard

import (
	"math"
	"strconv"

	"github.com/carehome/carehome-api/internal/domain/enquiry"
	"github.com/carehome/carehome-api/internal/domain/room"
)

// Bar is one pipeline stage scaled against the largest stage
type Bar struct {
	Label    string `json:"label"`
	Value    int    `json:"value"`
	BarStyle string `json:"bar_style"`
}

// Slice is one segment of the occupancy breakdown
type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Data is everything the care dashboard renders
type Data struct {
	Pipeline           []Bar   `json:"pipeline"`
	Occupancy          []Slice `json:"occupancy"`
	TotalRooms         int     `json:"total_rooms"`
	OccupiedRooms      int     `json:"occupied_rooms"`
	AvailableRooms     int     `json:"available_rooms"`
	OccupancyRate      float64 `json:"occupancy_rate"`
	OccupancyDashArray string  `json:"occupancy_dash_array"`
	TotalPipeline      int     `json:"total_pipeline"`
}

// Build assembles dashboard data from enquiry and room counts
func Build(enquiries map[enquiry.Status]int, rooms map[room.Status]int) *Data {
	d := &Data{
		Pipeline:  PipelineBars(enquiries),
		Occupancy: []Slice{
			{Label: "Occupied", Value: rooms[room.StatusOccupied]},
			{Label: "Available", Value: rooms[room.StatusAvailable]},
			{Label: "Maintenance", Value: rooms[room.StatusMaintenance]},
		},
	}

	for _, n := range rooms {
		d.TotalRooms += n
	}
	d.OccupiedRooms = rooms[room.StatusOccupied]
	d.AvailableRooms = d.TotalRooms - d.OccupiedRooms
	d.OccupancyRate = OccupancyRate(d.OccupiedRooms, d.TotalRooms)
	d.OccupancyDashArray = strconv.FormatFloat(d.OccupancyRate, 'f', -1, 64) + ", 100"

	for _, b := range d.Pipeline {
		d.TotalPipeline += b.Value
	}
	return d
}

// PipelineBars returns one bar per stage. Widths are relative to the largest stage, which is at least 1.
func PipelineBars(counts map[enquiry.Status]int) []Bar {
	maxValue := 1
	for _, s := range enquiry.PipelineStages {
		if counts[s] > maxValue {
			maxValue = counts[s]
		}
	}

	bars := make([]Bar, 0, len(enquiry.PipelineStages))
	for _, s := range enquiry.PipelineStages {
		v := counts[s]
		width := float64(v) / float64(maxValue) * 100
		bars = append(bars, Bar{
			Label:    s.Label(),
			Value:    v,
			BarStyle: "width: " + strconv.FormatFloat(width, 'f', -1, 64) + "%;",
		})
	}
	return bars
}

// OccupancyRate is occupied/total as a percentage rounded to one decimal place
func OccupancyRate(occupied, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*1000) / 10
}
