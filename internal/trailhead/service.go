package trailhead

import (
	"context"
	"errors"

	"backend-my14er/internal/db"
	"backend-my14er/internal/shared/geo"

	"github.com/google/uuid"
)

var ErrBadRating = errors.New("rating must be between 1 and 5")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

const selectTrailhead = `
	SELECT id, name, COALESCE(peak_id,''), COALESCE(road_class,''),
	       ST_Y(location::geometry), ST_X(location::geometry),
	       COALESCE(elevation_ft,0), created_at
	FROM trailheads`

func (s *Service) GetTrailhead(ctx context.Context, id string) (Trailhead, error) {
	row := s.db.QueryRow(ctx, selectTrailhead+` WHERE id=$1`, id)
	var th Trailhead
	if err := row.Scan(&th.ID, &th.Name, &th.PeakID, &th.RoadClass, &th.Lat, &th.Lng, &th.ElevationFt, &th.CreatedAt); err != nil {
		return Trailhead{}, err
	}
	return th, nil
}

func (s *Service) ListTrailheads(ctx context.Context) ([]Trailhead, error) {
	rows, err := s.db.Query(ctx, selectTrailhead+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrailheads(rows)
}

// Nearby finds trailheads within radiusKm of a point.
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]Trailhead, error) {
	rows, err := s.db.Query(ctx, selectTrailhead+`
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography, $3)
		ORDER BY name
	`, lng, lat, radiusKm*1000)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrailheads(rows)
}

// ForPeak lists the trailheads serving a peak, each annotated with the
// straight-line distance to the summit.
func (s *Service) ForPeak(ctx context.Context, peakID string) ([]Trailhead, error) {
	var peakLat, peakLng float64
	err := s.db.QueryRow(ctx, `SELECT lat, lng FROM peaks WHERE id=$1`, peakID).Scan(&peakLat, &peakLng)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, selectTrailhead+` WHERE peak_id=$1 ORDER BY name`, peakID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trailheads, err := scanTrailheads(rows)
	if err != nil {
		return nil, err
	}
	for i := range trailheads {
		trailheads[i].DistanceToSummitKm = geo.HaversineKm(trailheads[i].Lat, trailheads[i].Lng, peakLat, peakLng)
	}
	return trailheads, nil
}

// AddConditionReport upserts the caller's access-condition note for a
// trailhead; filing again replaces the previous note.
func (s *Service) AddConditionReport(ctx context.Context, trailheadID, userID string, rating int, comment string) (ConditionReport, error) {
	if rating < 1 || rating > 5 {
		return ConditionReport{}, ErrBadRating
	}

	report := ConditionReport{
		ID:          uuid.NewString(),
		TrailheadID: trailheadID,
		UserID:      userID,
		Rating:      rating,
		Comment:     comment,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trailhead_condition_reports (id, trailhead_id, user_id, rating, comment)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (trailhead_id, user_id) DO UPDATE
		SET rating=EXCLUDED.rating, comment=EXCLUDED.comment
		RETURNING created_at
	`, report.ID, report.TrailheadID, report.UserID, report.Rating, report.Comment)
	if err := row.Scan(&report.CreatedAt); err != nil {
		return ConditionReport{}, err
	}
	return report, nil
}

func (s *Service) ConditionReports(ctx context.Context, trailheadID string) ([]ConditionReport, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trailhead_id, user_id, rating, COALESCE(comment,''), created_at
		FROM trailhead_condition_reports WHERE trailhead_id=$1
		ORDER BY created_at DESC
	`, trailheadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []ConditionReport
	for rows.Next() {
		var r ConditionReport
		if err := rows.Scan(&r.ID, &r.TrailheadID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

type trailheadRows interface {
	Next() bool
	Scan(dest ...any) error
}

func scanTrailheads(rows trailheadRows) ([]Trailhead, error) {
	var trailheads []Trailhead
	for rows.Next() {
		var th Trailhead
		if err := rows.Scan(&th.ID, &th.Name, &th.PeakID, &th.RoadClass, &th.Lat, &th.Lng, &th.ElevationFt, &th.CreatedAt); err != nil {
			return nil, err
		}
		trailheads = append(trailheads, th)
	}
	return trailheads, nil
}
