package peak

import "time"

type Peak struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	ElevationFt int       `json:"elevation_ft"`
	Range       string    `json:"range"`
	Difficulty  string    `json:"difficulty"`
	Rank        int       `json:"rank"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	CreatedAt   time.Time `json:"created_at"`
}

type Route struct {
	ID              string    `json:"id"`
	PeakID          string    `json:"peak_id"`
	Name            string    `json:"name"`
	DistanceMi      float64   `json:"distance_mi"`
	ElevationGainFt float64   `json:"elevation_gain_ft"`
	Class           string    `json:"class"`
	CreatedAt       time.Time `json:"created_at"`
}
