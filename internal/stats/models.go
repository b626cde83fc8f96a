package stats

import "time"

// SummitLog is the read-side projection credited toward completion stats.
type SummitLog struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PeakID     string    `json:"peak_id"`
	RouteID    string    `json:"route_id,omitempty"`
	SummitDate string    `json:"summit_date"`
	Rating     int       `json:"rating"`
	Weather    string    `json:"weather,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RouteFacts carries the per-route figures summed into totals.
type RouteFacts struct {
	DistanceMi      float64
	ElevationGainFt float64
}

type Stats struct {
	SummitCount     int     `json:"summit_count"`
	TotalElevation  float64 `json:"total_elevation_ft"`
	TotalMiles      float64 `json:"total_miles"`
	DaysOnTrail     int     `json:"days_on_trail"`
	PercentComplete float64 `json:"percent_complete"`
}
