package stats

import (
	"math"

	"backend-my14er/internal/peak"
)

// Compute derives completion stats from a user's summit-log history.
// Repeat summits of the same peak count once; same-day multi-peak days
// count once. Logs whose route does not resolve contribute nothing to
// the distance and elevation totals.
func Compute(logs []SummitLog, routes map[string]RouteFacts) Stats {
	peaks := map[string]struct{}{}
	days := map[string]struct{}{}

	var stats Stats
	for _, entry := range logs {
		peaks[entry.PeakID] = struct{}{}
		days[entry.SummitDate] = struct{}{}

		if facts, ok := routes[entry.RouteID]; ok {
			stats.TotalElevation += facts.ElevationGainFt
			stats.TotalMiles += facts.DistanceMi
		}
	}

	stats.SummitCount = len(peaks)
	stats.DaysOnTrail = len(days)
	stats.PercentComplete = math.Round(float64(stats.SummitCount)/peak.TotalPeaks*1000) / 10
	return stats
}
