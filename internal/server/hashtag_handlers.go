// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTrendingHashtags handles GET /api/hashtags/trending
func (s *Server) GetTrendingHashtags(c *fiber.Ctx) error {
	tags, err := s.trendingService.Trending(c.Context())
	if err != nil {
		return respondServiceError(c, err, "Trending", 0)
	}

	return c.JSON(tags)
}

// GetPostsByHashtag handles GET /api/hashtags/:tag. Matching is
// case-insensitive; results are newest first.
func (s *Server) GetPostsByHashtag(c *fiber.Ctx) error {
	tag := c.Params("tag")
	page := parsePagination(c, defaultPageSize)
	userID, _ := s.optionalUserID(c)

	posts, err := s.postService.GetPostsByHashtag(c.Context(), tag, page.Limit, page.Offset, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(posts)
}
