package badge

import (
	"context"

	"backend-my14er/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) ListDefinitions(ctx context.Context) ([]Definition, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, code, name, description, criteria_type, threshold, COALESCE(range,''), created_at
		FROM badge_definitions
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var d Definition
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.Description, &d.CriteriaType, &d.Threshold, &d.Range, &d.CreatedAt); err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func (s *Service) UserBadges(ctx context.Context, userID string) ([]UserBadge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ub.id, ub.user_id, ub.badge_id, bd.code, bd.name, ub.earned_at
		FROM user_badges ub
		JOIN badge_definitions bd ON bd.id = ub.badge_id
		WHERE ub.user_id=$1
		ORDER BY ub.earned_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []UserBadge
	for rows.Next() {
		var b UserBadge
		if err := rows.Scan(&b.ID, &b.UserID, &b.BadgeID, &b.Code, &b.Name, &b.EarnedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, nil
}

// Evaluate recomputes the user's progress and awards any newly earned
// badges. Awards are idempotent; re-running after new summit logs only
// adds badges, never removes them.
func (s *Service) Evaluate(ctx context.Context, userID string) error {
	defs, err := s.ListDefinitions(ctx)
	if err != nil {
		return err
	}

	prog, err := s.loadProgress(ctx, userID)
	if err != nil {
		return err
	}

	for _, def := range Earned(defs, prog) {
		_, err := s.db.Exec(ctx, `
			INSERT INTO user_badges (id, user_id, badge_id)
			VALUES ($1,$2,$3)
			ON CONFLICT (user_id, badge_id) DO NOTHING
		`, uuid.NewString(), userID, def.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) loadProgress(ctx context.Context, userID string) (Progress, error) {
	prog := Progress{
		RangeSummits:    map[string]int{},
		RangePeakCounts: map[string]int{},
	}

	err := s.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT peak_id)
		FROM summit_logs WHERE user_id=$1
	`, userID).Scan(&prog.SummitCount)
	if err != nil {
		return Progress{}, err
	}

	err = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(r.elevation_gain_ft), 0)
		FROM summit_logs sl
		JOIN routes r ON r.id = sl.route_id
		WHERE sl.user_id=$1
	`, userID).Scan(&prog.TotalElevationFt)
	if err != nil {
		return Progress{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT p.range, COUNT(DISTINCT sl.peak_id)
		FROM summit_logs sl
		JOIN peaks p ON p.id = sl.peak_id
		WHERE sl.user_id=$1
		GROUP BY p.range
	`, userID)
	if err != nil {
		return Progress{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var rangeName string
		var count int
		if err := rows.Scan(&rangeName, &count); err != nil {
			return Progress{}, err
		}
		prog.RangeSummits[rangeName] = count
	}

	totals, err := s.db.Query(ctx, `
		SELECT range, COUNT(*)
		FROM peaks
		GROUP BY range
	`)
	if err != nil {
		return Progress{}, err
	}
	defer totals.Close()
	for totals.Next() {
		var rangeName string
		var count int
		if err := totals.Scan(&rangeName, &count); err != nil {
			return Progress{}, err
		}
		prog.RangePeakCounts[rangeName] = count
	}

	return prog, nil
}
