package event

import "time"

type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	OrganizerID  string    `json:"organizer_id"`
	PeakID       string    `json:"peak_id,omitempty"`
	EventDate    time.Time `json:"event_date"`
	MaxAttendees int       `json:"max_attendees"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type Attendee struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}
