package storage

import (
	"context"
	"time"

	"backend-my14er/internal/auth"
	"backend-my14er/internal/db"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// SavePhoto records an uploaded photo object. refID links it to the row it
// illustrates (trip report, post or profile) depending on kind.
func (s *Service) SavePhoto(ctx context.Context, userID, url, kind, refID string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO photo_objects (id, user_id, url, kind, ref_id)
		VALUES ($1,$2,$3,$4,$5)
	`, id, userID, url, kind, refID)
	if err != nil {
		return "", err
	}
	return id, nil
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/photos", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			FileName string `json:"file_name"`
			Kind     string `json:"kind"`
			RefID    string `json:"ref_id"`
		}
		_ = c.BodyParser(&body)
		if body.FileName == "" {
			body.FileName = "upload"
		}
		if body.Kind == "" {
			body.Kind = "report_photo"
		}
		url := "https://storage.example/" + body.FileName
		id, err := svc.SavePhoto(c.Context(), auth.UserID(c), url, body.Kind, body.RefID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"id":         id,
			"url":        url,
			"expires_at": time.Now().Add(15 * time.Minute),
		})
	})
}
