package handlers

import (
	"strconv"

	"github.com/craftfolio/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// sendSuccess writes the standard success envelope
func sendSuccess(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, echo.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// getUserIDFromContext extracts the authenticated user's ID set by the JWT middleware
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// parsePagination reads page/limit query params with sane defaults
func parsePagination(c echo.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
