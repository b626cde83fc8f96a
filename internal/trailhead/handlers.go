package trailhead

import (
	"errors"
	"strconv"

	"backend-my14er/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		if c.Query("lat") != "" {
			lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
			lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
			radius, err3 := strconv.ParseFloat(c.Query("radius_km", "25"), 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid coordinates")
			}
			trailheads, err := svc.Nearby(c.Context(), lat, lng, radius)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return c.JSON(trailheads)
		}

		trailheads, err := svc.ListTrailheads(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(trailheads)
	})

	r.Get("/peak/:peakID", func(c *fiber.Ctx) error {
		trailheads, err := svc.ForPeak(c.Context(), c.Params("peakID"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "peak not found")
		}
		return c.JSON(trailheads)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		th, err := svc.GetTrailhead(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trailhead not found")
		}
		return c.JSON(th)
	})

	r.Get("/:id/conditions", func(c *fiber.Ctx) error {
		reports, err := svc.ConditionReports(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(reports)
	})

	r.Post("/:id/conditions", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		report, err := svc.AddConditionReport(c.Context(), c.Params("id"), auth.UserID(c), body.Rating, body.Comment)
		if err != nil {
			if errors.Is(err, ErrBadRating) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(report)
	})
}
