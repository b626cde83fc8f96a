package event

import (
	"errors"

	"backend-my14er/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Event
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Title == "" || req.MaxAttendees <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "title and max_attendees required")
		}
		req.OrganizerID = auth.UserID(c)
		event, err := svc.CreateEvent(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(event)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		events, err := svc.ListEvents(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(events)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		event, err := svc.GetEvent(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "event not found")
		}
		return c.JSON(event)
	})

	r.Get("/:id/attendees", func(c *fiber.Ctx) error {
		attendees, err := svc.Attendees(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(attendees)
	})

	r.Post("/:id/attendance", authMiddleware, func(c *fiber.Ctx) error {
		status, err := svc.ToggleAttendance(c.Context(), c.Params("id"), auth.UserID(c))
		if err != nil {
			switch {
			case errors.Is(err, ErrEventNotActive):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			case errors.Is(err, ErrEventFull):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.JSON(fiber.Map{"status": status})
	})
}
