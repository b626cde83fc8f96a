package report

import (
	"fmt"
	"strings"
	"time"
)

type TripReport struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"user_id"`
	PeakID                 string    `json:"peak_id"`
	RouteID                string    `json:"route_id,omitempty"`
	HikeDate               string    `json:"hike_date"`
	StartTime              string    `json:"start_time,omitempty"`
	EndTime                string    `json:"end_time,omitempty"`
	TotalTimeMinutes       int       `json:"total_time_minutes,omitempty"`
	DifficultyRating       int       `json:"difficulty_rating"`
	ConditionSeverityScore int       `json:"condition_severity_score"`
	ObjectiveRiskScore     int       `json:"objective_risk_score"`
	TrailheadAccessRating  string    `json:"trailhead_access_rating,omitempty"`
	SnowPresent            bool      `json:"snow_present"`
	OverallRecommendation  bool      `json:"overall_recommendation"`
	Summary                string    `json:"summary"`
	Narrative              string    `json:"narrative,omitempty"`
	Sections               Sections  `json:"sections"`
	CreatedAt              time.Time `json:"created_at"`
}

// SubmitInput carries one trip-report submission. ClientToken, when set,
// makes the submission replay-safe: the same token never creates a second
// report.
type SubmitInput struct {
	PeakID                 string `json:"peak_id"`
	RouteID                string `json:"route_id"`
	HikeDate               string `json:"hike_date"`
	StartTime              string `json:"start_time"`
	EndTime                string `json:"end_time"`
	TotalTimeMinutes       int    `json:"total_time_minutes"`
	DifficultyRating       int    `json:"difficulty_rating"`
	ConditionSeverityScore int    `json:"condition_severity_score"`
	ObjectiveRiskScore     int    `json:"objective_risk_score"`
	TrailheadAccessRating  string `json:"trailhead_access_rating"`
	SnowPresent            bool   `json:"snow_present"`
	OverallRecommendation  bool   `json:"overall_recommendation"`
	Summary                string `json:"summary"`
	Narrative              string `json:"narrative"`
	SectionsJSON           string `json:"sections_json"`
	ClientToken            string `json:"client_token"`
}

// Sections is the structured detail of a report. Each section is an
// independently toggleable block with its own typed fields, keyed by name.
type Sections struct {
	Weather  *WeatherSection  `json:"weather,omitempty"`
	Snow     *SnowSection     `json:"snow,omitempty"`
	Wildlife *WildlifeSection `json:"wildlife,omitempty"`
	Gear     *GearSection     `json:"gear,omitempty"`
	Water    *WaterSection    `json:"water,omitempty"`
}

type WeatherSection struct {
	Enabled     bool   `json:"enabled"`
	SummitTempF *int   `json:"summit_temp_f,omitempty"`
	WindMph     *int   `json:"wind_mph,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type SnowSection struct {
	Enabled      bool   `json:"enabled"`
	DepthInches  *int   `json:"depth_inches,omitempty"`
	TractionUsed string `json:"traction_used,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type WildlifeSection struct {
	Enabled   bool     `json:"enabled"`
	Sightings []string `json:"sightings,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type GearSection struct {
	Enabled bool     `json:"enabled"`
	Items   []string `json:"items,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

type WaterSection struct {
	Enabled bool   `json:"enabled"`
	Sources string `json:"sources,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// WeatherSummary derives the summit-log weather string: temperature, wind
// and free-text notes joined by ", ". Nil when the section is disabled,
// absent or empty.
func (s Sections) WeatherSummary() *string {
	w := s.Weather
	if w == nil || !w.Enabled {
		return nil
	}

	var parts []string
	if w.SummitTempF != nil {
		parts = append(parts, fmt.Sprintf("%d°F", *w.SummitTempF))
	}
	if w.WindMph != nil {
		parts = append(parts, fmt.Sprintf("%d mph wind", *w.WindMph))
	}
	if strings.TrimSpace(w.Notes) != "" {
		parts = append(parts, w.Notes)
	}
	if len(parts) == 0 {
		return nil
	}

	summary := strings.Join(parts, ", ")
	return &summary
}
