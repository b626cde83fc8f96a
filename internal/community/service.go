package community

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"backend-my14er/internal/db"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RecentFeedKey caches the global recent-activity feed. Writers that add
// feed-visible rows (posts, trip-report summit announcements) must delete it.
const RecentFeedKey = "feed:recent"

const recentFeedLimit = 50

type Service struct {
	db      db.Querier
	redis   *redis.Client
	feedTTL time.Duration
}

func NewService(db db.Querier, redisClient *redis.Client, feedTTL time.Duration) *Service {
	if feedTTL <= 0 {
		feedTTL = time.Minute
	}
	return &Service{db: db, redis: redisClient, feedTTL: feedTTL}
}

func (s *Service) CreatePost(ctx context.Context, input Post) (Post, error) {
	input.ID = uuid.NewString()
	if input.ActivityType == "" {
		input.ActivityType = "post"
	}
	if input.Metadata == nil {
		input.Metadata = json.RawMessage(`{}`)
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO community_posts (id, user_id, content, peak_id, activity_type, activity_metadata)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, input.ID, input.UserID, input.Content, nullIfEmpty(input.PeakID), input.ActivityType, []byte(input.Metadata))
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Post{}, err
	}

	s.InvalidateRecent(ctx)
	return input, nil
}

func (s *Service) Follow(ctx context.Context, followerID, followingID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_follows (follower_id, following_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, followerID, followingID)
	return err
}

func (s *Service) Unfollow(ctx context.Context, followerID, followingID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM user_follows
		WHERE follower_id=$1 AND following_id=$2
	`, followerID, followingID)
	return err
}

// Feed returns the caller's posts plus those of everyone they follow,
// newest first.
func (s *Service) Feed(ctx context.Context, userID string) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, content, COALESCE(peak_id,''), activity_type, activity_metadata, created_at
		FROM community_posts
		WHERE user_id=$1
		   OR user_id IN (SELECT following_id FROM user_follows WHERE follower_id=$1)
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// Recent returns the latest feed-visible activity across all users. The
// result is cached in redis and invalidated whenever a post is written.
func (s *Service) Recent(ctx context.Context) ([]Post, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, RecentFeedKey).Bytes()
		if err == nil {
			var posts []Post
			if err := json.Unmarshal(cached, &posts); err == nil {
				return posts, nil
			}
		}
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, content, COALESCE(peak_id,''), activity_type, activity_metadata, created_at
		FROM community_posts
		ORDER BY created_at DESC
		LIMIT $1
	`, recentFeedLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		payload, err := json.Marshal(posts)
		if err == nil {
			if err := s.redis.Set(ctx, RecentFeedKey, payload, s.feedTTL).Err(); err != nil {
				log.Printf("feed cache set error: %v", err)
			}
		}
	}
	return posts, nil
}

// InvalidateRecent drops the cached recent feed so the next read refetches.
func (s *Service) InvalidateRecent(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, RecentFeedKey).Err(); err != nil {
		log.Printf("feed cache invalidate error: %v", err)
	}
}

type postRows interface {
	Next() bool
	Scan(dest ...any) error
}

func scanPosts(rows postRows) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		var p Post
		var meta []byte
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.PeakID, &p.ActivityType, &meta, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Metadata = json.RawMessage(meta)
		posts = append(posts, p)
	}
	return posts, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
