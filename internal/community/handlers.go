package community

import (
	"backend-my14er/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/posts", authMiddleware, func(c *fiber.Ctx) error {
		var req Post
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Content == "" {
			return fiber.NewError(fiber.StatusBadRequest, "content required")
		}
		req.UserID = auth.UserID(c)
		post, err := svc.CreatePost(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	r.Get("/feed", authMiddleware, func(c *fiber.Ctx) error {
		posts, err := svc.Feed(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(posts)
	})

	r.Get("/recent", func(c *fiber.Ctx) error {
		posts, err := svc.Recent(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(posts)
	})

	r.Post("/follow/:userID", authMiddleware, func(c *fiber.Ctx) error {
		followerID := auth.UserID(c)
		followingID := c.Params("userID")
		if followerID == followingID {
			return fiber.NewError(fiber.StatusBadRequest, "cannot follow yourself")
		}
		if err := svc.Follow(c.Context(), followerID, followingID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/follow/:userID", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Unfollow(c.Context(), auth.UserID(c), c.Params("userID")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
