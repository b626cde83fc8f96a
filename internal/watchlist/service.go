package watchlist

import (
	"context"
	"time"

	"backend-my14er/internal/db"
)

// Entry is a watched peak joined with its directory facts.
type Entry struct {
	UserID      string    `json:"user_id"`
	PeakID      string    `json:"peak_id"`
	PeakName    string    `json:"peak_name"`
	PeakSlug    string    `json:"peak_slug"`
	ElevationFt int       `json:"elevation_ft"`
	AddedAt     time.Time `json:"added_at"`
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Add(ctx context.Context, userID, peakID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO peak_watchlist (user_id, peak_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, userID, peakID)
	return err
}

func (s *Service) Remove(ctx context.Context, userID, peakID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM peak_watchlist
		WHERE user_id=$1 AND peak_id=$2
	`, userID, peakID)
	return err
}

func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT w.user_id, w.peak_id, p.name, p.slug, p.elevation_ft, w.added_at
		FROM peak_watchlist w
		JOIN peaks p ON p.id = w.peak_id
		WHERE w.user_id=$1
		ORDER BY w.added_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.PeakID, &e.PeakName, &e.PeakSlug, &e.ElevationFt, &e.AddedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
