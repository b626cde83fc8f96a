package badge

import (
	"backend-my14er/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/definitions", func(c *fiber.Ctx) error {
		defs, err := svc.ListDefinitions(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(defs)
	})

	r.Get("/mine", authMiddleware, func(c *fiber.Ctx) error {
		badges, err := svc.UserBadges(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(badges)
	})

	r.Post("/evaluate", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Evaluate(c.Context(), auth.UserID(c)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
