package badge

import "time"

// Criteria types understood by the evaluator.
const (
	CriteriaSummitCount   = "summit_count"
	CriteriaElevationGain = "elevation_total"
	CriteriaRangeComplete = "range_complete"
)

type Definition struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CriteriaType string    `json:"criteria_type"`
	Threshold    int       `json:"threshold"`
	Range        string    `json:"range,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserBadge struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	BadgeID  string    `json:"badge_id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	EarnedAt time.Time `json:"earned_at"`
}

// Progress is the set of facts badge criteria are evaluated against.
type Progress struct {
	SummitCount      int
	TotalElevationFt float64
	RangeSummits     map[string]int
	RangePeakCounts  map[string]int
}
