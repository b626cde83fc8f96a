package peak

import (
	"context"

	"backend-my14er/internal/db"
)

// TotalPeaks is the number of ranked Colorado fourteeners tracked by the app.
const TotalPeaks = 58

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) ListPeaks(ctx context.Context, rangeFilter string) ([]Peak, error) {
	query := `
		SELECT id, slug, name, elevation_ft, range, difficulty, rank, lat, lng, created_at
		FROM peaks
		ORDER BY rank
	`
	args := []any{}
	if rangeFilter != "" {
		query = `
		SELECT id, slug, name, elevation_ft, range, difficulty, rank, lat, lng, created_at
		FROM peaks WHERE range=$1
		ORDER BY rank
	`
		args = append(args, rangeFilter)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var peaks []Peak
	for rows.Next() {
		var p Peak
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.ElevationFt, &p.Range, &p.Difficulty, &p.Rank, &p.Lat, &p.Lng, &p.CreatedAt); err != nil {
			return nil, err
		}
		peaks = append(peaks, p)
	}
	return peaks, nil
}

func (s *Service) GetPeak(ctx context.Context, id string) (Peak, error) {
	return s.scanPeak(s.db.QueryRow(ctx, `
		SELECT id, slug, name, elevation_ft, range, difficulty, rank, lat, lng, created_at
		FROM peaks WHERE id=$1
	`, id))
}

func (s *Service) GetPeakBySlug(ctx context.Context, slug string) (Peak, error) {
	return s.scanPeak(s.db.QueryRow(ctx, `
		SELECT id, slug, name, elevation_ft, range, difficulty, rank, lat, lng, created_at
		FROM peaks WHERE slug=$1
	`, slug))
}

func (s *Service) RoutesForPeak(ctx context.Context, peakID string) ([]Route, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, peak_id, name, distance_mi, elevation_gain_ft, class, created_at
		FROM routes WHERE peak_id=$1
		ORDER BY name
	`, peakID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.PeakID, &r.Name, &r.DistanceMi, &r.ElevationGainFt, &r.Class, &r.CreatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Service) scanPeak(row rowScanner) (Peak, error) {
	var p Peak
	if err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.ElevationFt, &p.Range, &p.Difficulty, &p.Rank, &p.Lat, &p.Lng, &p.CreatedAt); err != nil {
		return Peak{}, err
	}
	return p, nil
}
