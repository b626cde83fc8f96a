package trailhead

import "time"

type Trailhead struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PeakID      string  `json:"peak_id,omitempty"`
	RoadClass   string  `json:"road_class,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	ElevationFt int     `json:"elevation_ft"`
	// Straight-line distance to the peak's summit; only populated by ForPeak.
	DistanceToSummitKm float64   `json:"distance_to_summit_km,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// ConditionReport is a user-filed note on trailhead road/access conditions.
type ConditionReport struct {
	ID          string    `json:"id"`
	TrailheadID string    `json:"trailhead_id"`
	UserID      string    `json:"user_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
