package event

import (
	"context"
	"errors"
	"time"

	"backend-my14er/internal/db"

	"github.com/google/uuid"
)

var (
	ErrEventNotActive = errors.New("event is not active")
	ErrEventFull      = errors.New("event is full")
)

// Attendance outcomes returned by ToggleAttendance.
const (
	StatusJoined = "joined"
	StatusLeft   = "left"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateEvent(ctx context.Context, input Event) (Event, error) {
	input.ID = uuid.NewString()
	if input.Status == "" {
		input.Status = "active"
	}
	if input.EventDate.IsZero() {
		input.EventDate = time.Now()
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO community_events (id, title, description, organizer_id, peak_id, event_date, max_attendees, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, input.ID, input.Title, input.Description, input.OrganizerID, nullIfEmpty(input.PeakID), input.EventDate, input.MaxAttendees, input.Status)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Event{}, err
	}
	return input, nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (Event, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, COALESCE(description,''), organizer_id, COALESCE(peak_id,''), event_date, max_attendees, status, created_at
		FROM community_events WHERE id=$1
	`, id)
	var e Event
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.OrganizerID, &e.PeakID, &e.EventDate, &e.MaxAttendees, &e.Status, &e.CreatedAt); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, COALESCE(description,''), organizer_id, COALESCE(peak_id,''), event_date, max_attendees, status, created_at
		FROM community_events
		WHERE status='active'
		ORDER BY event_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.OrganizerID, &e.PeakID, &e.EventDate, &e.MaxAttendees, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (s *Service) Attendees(ctx context.Context, eventID string) ([]Attendee, error) {
	rows, err := s.db.Query(ctx, `
		SELECT event_id, user_id, joined_at
		FROM event_attendees WHERE event_id=$1
		ORDER BY joined_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []Attendee
	for rows.Next() {
		var a Attendee
		if err := rows.Scan(&a.EventID, &a.UserID, &a.JoinedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, nil
}

// ToggleAttendance joins the caller to the event, or removes them if they
// already RSVPed. The event row is locked for the duration of the check,
// so concurrent joins near the capacity boundary serialize and at most
// max_attendees ever succeed.
func (s *Service) ToggleAttendance(ctx context.Context, eventID, userID string) (string, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	var maxAttendees int
	err = tx.QueryRow(ctx, `
		SELECT status, max_attendees
		FROM community_events WHERE id=$1
		FOR UPDATE
	`, eventID).Scan(&status, &maxAttendees)
	if err != nil {
		return "", err
	}
	if status != "active" {
		return "", ErrEventNotActive
	}

	var attending bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM event_attendees WHERE event_id=$1 AND user_id=$2)
	`, eventID, userID).Scan(&attending)
	if err != nil {
		return "", err
	}

	if attending {
		_, err = tx.Exec(ctx, `
			DELETE FROM event_attendees WHERE event_id=$1 AND user_id=$2
		`, eventID, userID)
		if err != nil {
			return "", err
		}
		if err := tx.Commit(ctx); err != nil {
			return "", err
		}
		return StatusLeft, nil
	}

	var count int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_attendees WHERE event_id=$1
	`, eventID).Scan(&count)
	if err != nil {
		return "", err
	}
	if count >= maxAttendees {
		return "", ErrEventFull
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO event_attendees (event_id, user_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, eventID, userID)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return StatusJoined, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
