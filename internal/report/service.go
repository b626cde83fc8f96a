package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"backend-my14er/internal/badge"
	"backend-my14er/internal/community"
	"backend-my14er/internal/db"
	"backend-my14er/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

const maxSummaryLen = 500

type Service struct {
	db     db.Querier
	badges *badge.Service
	hub    *stream.Hub
	redis  *redis.Client
}

// NewService wires the submission cascade. badges, hub and redisClient are
// optional; when nil the corresponding post-commit step is skipped.
func NewService(dbq db.Querier, badges *badge.Service, hub *stream.Hub, redisClient *redis.Client) *Service {
	return &Service{db: dbq, badges: badges, hub: hub, redis: redisClient}
}

// Submit validates the input, then writes the trip report, its summit-log
// projection and the community feed announcement inside one transaction.
// Either all three rows commit or none do. A replay carrying the same
// client token returns the original report without writing anything.
func (s *Service) Submit(ctx context.Context, userID string, input SubmitInput) (TripReport, error) {
	if userID == "" {
		return TripReport{}, ErrUnauthenticated
	}
	if input.PeakID == "" || input.HikeDate == "" || strings.TrimSpace(input.Summary) == "" {
		return TripReport{}, &ValidationError{"Peak, hike date, and summary are required."}
	}
	if len([]rune(input.Summary)) > maxSummaryLen {
		return TripReport{}, &ValidationError{"Summary must be 500 characters or fewer."}
	}
	for _, rating := range []int{input.DifficultyRating, input.ConditionSeverityScore, input.ObjectiveRiskScore} {
		if rating < 1 || rating > 5 {
			return TripReport{}, &ValidationError{"Ratings must be between 1 and 5."}
		}
	}
	if _, err := time.Parse("2006-01-02", input.HikeDate); err != nil {
		return TripReport{}, &ValidationError{"Invalid hike date."}
	}

	var sections Sections
	if input.SectionsJSON != "" {
		if err := json.Unmarshal([]byte(input.SectionsJSON), &sections); err != nil {
			return TripReport{}, &ValidationError{"Invalid sections data."}
		}
	}

	rep := TripReport{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		PeakID:                 input.PeakID,
		RouteID:                input.RouteID,
		HikeDate:               input.HikeDate,
		StartTime:              input.StartTime,
		EndTime:                input.EndTime,
		TotalTimeMinutes:       input.TotalTimeMinutes,
		DifficultyRating:       input.DifficultyRating,
		ConditionSeverityScore: input.ConditionSeverityScore,
		ObjectiveRiskScore:     input.ObjectiveRiskScore,
		TrailheadAccessRating:  input.TrailheadAccessRating,
		SnowPresent:            input.SnowPresent,
		OverallRecommendation:  input.OverallRecommendation,
		Summary:                input.Summary,
		Narrative:              input.Narrative,
		Sections:               sections,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return TripReport{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sectionsJSON, err := json.Marshal(sections)
	if err != nil {
		return TripReport{}, err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO trip_reports (
			id, user_id, peak_id, route_id, hike_date, start_time, end_time,
			total_time_minutes, difficulty_rating, condition_severity_score,
			objective_risk_score, trailhead_access_rating, snow_present,
			overall_recommendation, summary, narrative, sections, client_token
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (client_token) DO NOTHING
		RETURNING created_at
	`, rep.ID, userID, input.PeakID, nullIfEmpty(input.RouteID), input.HikeDate,
		nullIfEmpty(input.StartTime), nullIfEmpty(input.EndTime), input.TotalTimeMinutes,
		input.DifficultyRating, input.ConditionSeverityScore, input.ObjectiveRiskScore,
		nullIfEmpty(input.TrailheadAccessRating), input.SnowPresent, input.OverallRecommendation,
		input.Summary, nullIfEmpty(input.Narrative), sectionsJSON, nullIfEmpty(input.ClientToken))
	if err := row.Scan(&rep.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) && input.ClientToken != "" {
			return s.byClientToken(ctx, input.ClientToken)
		}
		return TripReport{}, err
	}

	weather := sections.WeatherSummary()
	_, err = tx.Exec(ctx, `
		INSERT INTO summit_logs (id, user_id, peak_id, route_id, summit_date, rating, weather, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, uuid.NewString(), userID, input.PeakID, nullIfEmpty(input.RouteID),
		input.HikeDate, input.DifficultyRating, weather, input.Summary)
	if err != nil {
		return TripReport{}, fmt.Errorf("summit log insert: %w", err)
	}

	peakName, peakElevation := "a 14er", 14000
	err = tx.QueryRow(ctx, `SELECT name, elevation_ft FROM peaks WHERE id=$1`, input.PeakID).
		Scan(&peakName, &peakElevation)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return TripReport{}, err
	}

	routeName := ""
	if input.RouteID != "" {
		err = tx.QueryRow(ctx, `SELECT name FROM routes WHERE id=$1`, input.RouteID).Scan(&routeName)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return TripReport{}, err
		}
	}

	content := fmt.Sprintf("Summited %s (%d')", peakName, peakElevation)
	if routeName != "" {
		content += " via " + routeName
	}
	content += "!"

	metadata, err := json.Marshal(activityMetadata{
		SummitDate:   input.HikeDate,
		RouteName:    routeName,
		TripReportID: rep.ID,
	})
	if err != nil {
		return TripReport{}, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO community_posts (id, user_id, content, peak_id, activity_type, activity_metadata)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, uuid.NewString(), userID, content, input.PeakID, "summit", metadata)
	if err != nil {
		return TripReport{}, fmt.Errorf("community post insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return TripReport{}, err
	}

	s.afterCommit(ctx, userID, rep, content)
	return rep, nil
}

type activityMetadata struct {
	SummitDate   string `json:"summit_date"`
	RouteName    string `json:"route_name,omitempty"`
	TripReportID string `json:"trip_report_id"`
}

// afterCommit runs the derived side effects. These touch reconcilable
// state only (badge awards, cache, live stream), so failures are logged
// rather than surfaced.
func (s *Service) afterCommit(ctx context.Context, userID string, rep TripReport, content string) {
	if s.badges != nil {
		if err := s.badges.Evaluate(ctx, userID); err != nil {
			log.Printf("badge evaluation failed for user %s: %v", userID, err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, community.RecentFeedKey).Err(); err != nil {
			log.Printf("feed cache invalidate error: %v", err)
		}
	}

	if s.hub != nil {
		payload, err := json.Marshal(map[string]string{
			"type":           "summit",
			"trip_report_id": rep.ID,
			"user_id":        userID,
			"content":        content,
		})
		if err == nil {
			s.hub.Broadcast(rep.PeakID, payload)
		}
	}
}

func (s *Service) Get(ctx context.Context, id string) (TripReport, error) {
	return s.scanReport(s.db.QueryRow(ctx, selectReport+` WHERE id=$1`, id))
}

func (s *Service) byClientToken(ctx context.Context, token string) (TripReport, error) {
	return s.scanReport(s.db.QueryRow(ctx, selectReport+` WHERE client_token=$1`, token))
}

func (s *Service) ListForPeak(ctx context.Context, peakID string) ([]TripReport, error) {
	rows, err := s.db.Query(ctx, selectReport+` WHERE peak_id=$1 ORDER BY created_at DESC`, peakID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []TripReport
	for rows.Next() {
		rep, err := s.scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]TripReport, error) {
	rows, err := s.db.Query(ctx, selectReport+` WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []TripReport
	for rows.Next() {
		rep, err := s.scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

const selectReport = `
	SELECT id, user_id, peak_id, COALESCE(route_id,''), hike_date,
	       COALESCE(start_time,''), COALESCE(end_time,''), COALESCE(total_time_minutes,0),
	       difficulty_rating, condition_severity_score, objective_risk_score,
	       COALESCE(trailhead_access_rating,''), snow_present, overall_recommendation,
	       summary, COALESCE(narrative,''), sections, created_at
	FROM trip_reports`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Service) scanReport(row rowScanner) (TripReport, error) {
	var rep TripReport
	var sections []byte
	err := row.Scan(&rep.ID, &rep.UserID, &rep.PeakID, &rep.RouteID, &rep.HikeDate,
		&rep.StartTime, &rep.EndTime, &rep.TotalTimeMinutes,
		&rep.DifficultyRating, &rep.ConditionSeverityScore, &rep.ObjectiveRiskScore,
		&rep.TrailheadAccessRating, &rep.SnowPresent, &rep.OverallRecommendation,
		&rep.Summary, &rep.Narrative, &sections, &rep.CreatedAt)
	if err != nil {
		return TripReport{}, err
	}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &rep.Sections); err != nil {
			return TripReport{}, err
		}
	}
	return rep, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
