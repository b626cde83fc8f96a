package report

import (
	"errors"

	"backend-my14er/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req SubmitInput
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rep, err := svc.Submit(c.Context(), auth.UserID(c), req)
		if err != nil {
			var ve *ValidationError
			switch {
			case errors.Is(err, ErrUnauthenticated):
				return fiber.NewError(fiber.StatusUnauthorized, err.Error())
			case errors.As(err, &ve):
				return fiber.NewError(fiber.StatusBadRequest, ve.Reason)
			default:
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.Status(fiber.StatusCreated).JSON(rep)
	})

	r.Get("/mine", authMiddleware, func(c *fiber.Ctx) error {
		reports, err := svc.ListForUser(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(reports)
	})

	r.Get("/peak/:peakID", func(c *fiber.Ctx) error {
		reports, err := svc.ListForPeak(c.Context(), c.Params("peakID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(reports)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		rep, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trip report not found")
		}
		return c.JSON(rep)
	})
}
