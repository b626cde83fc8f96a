package peak

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		peaks, err := svc.ListPeaks(c.Context(), c.Query("range"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(peaks)
	})

	r.Get("/:slug", func(c *fiber.Ctx) error {
		p, err := svc.GetPeakBySlug(c.Context(), c.Params("slug"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "peak not found")
		}
		return c.JSON(p)
	})

	r.Get("/:slug/routes", func(c *fiber.Ctx) error {
		p, err := svc.GetPeakBySlug(c.Context(), c.Params("slug"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "peak not found")
		}
		routes, err := svc.RoutesForPeak(c.Context(), p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(routes)
	})
}
