package stats

import (
	"context"

	"backend-my14er/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// StatsForUser recomputes completion stats from the user's full summit-log
// history on every call. The history is one person's hikes, so the
// projection stays cheap without memoization.
func (s *Service) StatsForUser(ctx context.Context, userID string) (Stats, error) {
	logs, err := s.SummitLogs(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	routes, err := s.routeFacts(ctx, logs)
	if err != nil {
		return Stats{}, err
	}

	return Compute(logs, routes), nil
}

func (s *Service) SummitLogs(ctx context.Context, userID string) ([]SummitLog, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, peak_id, COALESCE(route_id,''), summit_date, rating,
		       COALESCE(weather,''), COALESCE(notes,''), created_at
		FROM summit_logs WHERE user_id=$1
		ORDER BY summit_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []SummitLog
	for rows.Next() {
		var l SummitLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.PeakID, &l.RouteID, &l.SummitDate, &l.Rating, &l.Weather, &l.Notes, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (s *Service) routeFacts(ctx context.Context, logs []SummitLog) (map[string]RouteFacts, error) {
	var ids []string
	seen := map[string]struct{}{}
	for _, l := range logs {
		if l.RouteID == "" {
			continue
		}
		if _, ok := seen[l.RouteID]; ok {
			continue
		}
		seen[l.RouteID] = struct{}{}
		ids = append(ids, l.RouteID)
	}
	if len(ids) == 0 {
		return map[string]RouteFacts{}, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, distance_mi, elevation_gain_ft
		FROM routes WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	facts := map[string]RouteFacts{}
	for rows.Next() {
		var id string
		var f RouteFacts
		if err := rows.Scan(&id, &f.DistanceMi, &f.ElevationGainFt); err != nil {
			return nil, err
		}
		facts[id] = f
	}
	return facts, nil
}
