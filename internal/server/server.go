package server

import (
	"time"

	"backend-my14er/internal/auth"
	"backend-my14er/internal/badge"
	"backend-my14er/internal/community"
	"backend-my14er/internal/config"
	"backend-my14er/internal/event"
	"backend-my14er/internal/peak"
	"backend-my14er/internal/report"
	"backend-my14er/internal/stats"
	"backend-my14er/internal/storage"
	"backend-my14er/internal/stream"
	"backend-my14er/internal/trailhead"
	"backend-my14er/internal/watchlist"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	feedTTL := time.Duration(s.Cfg.FeedCacheTTL) * time.Second

	badgeSvc := badge.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret))
	peak.RegisterRoutes(s.App.Group("/peaks"), peak.NewService(s.DB))
	trailhead.RegisterRoutes(s.App.Group("/trailheads"), trailhead.NewService(s.DB), jwtMiddleware)
	report.RegisterRoutes(s.App.Group("/reports"), report.NewService(s.DB, badgeSvc, s.Stream, s.Redis), jwtMiddleware)
	stats.RegisterRoutes(s.App.Group("/stats"), stats.NewService(s.DB), jwtMiddleware)
	community.RegisterRoutes(s.App.Group("/community"), community.NewService(s.DB, s.Redis, feedTTL), jwtMiddleware)
	event.RegisterRoutes(s.App.Group("/events"), event.NewService(s.DB), jwtMiddleware)
	badge.RegisterRoutes(s.App.Group("/badges"), badgeSvc, jwtMiddleware)
	watchlist.RegisterRoutes(s.App.Group("/watchlist"), watchlist.NewService(s.DB), jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"), storage.NewService(s.DB), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
