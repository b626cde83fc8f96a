package community

import (
	"encoding/json"
	"time"
)

type Post struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Content      string          `json:"content"`
	PeakID       string          `json:"peak_id,omitempty"`
	ActivityType string          `json:"activity_type"`
	Metadata     json.RawMessage `json:"activity_metadata,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Follow struct {
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
}
