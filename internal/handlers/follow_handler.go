package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/craftfolio/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/follow/:userId", h.FollowUser)
	g.POST("/users/unfollow/:userId", h.UnfollowUser)
	g.GET("/users/:userId/followers", h.GetFollowers)
	g.GET("/users/:userId/following", h.GetFollowing)
	g.GET("/users/:userId/follow-status", h.CheckFollowStatus)
	g.GET("/users/:userId/follow-stats", h.GetFollowStats)
}

// FollowUser follows the user identified by the path param
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseUserIDParam(c)
	if err != nil {
		return err
	}

	user, err := h.followService.FollowUser(currentUserID, targetID)
	if err != nil {
		return followErrorToHTTP(err, "Cannot follow yourself")
	}

	return sendSuccess(c, http.StatusOK, "Successfully followed user", echo.Map{"user": user})
}

// UnfollowUser unfollows the user identified by the path param
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseUserIDParam(c)
	if err != nil {
		return err
	}

	user, err := h.followService.UnfollowUser(currentUserID, targetID)
	if err != nil {
		return followErrorToHTTP(err, "Cannot unfollow yourself")
	}

	return sendSuccess(c, http.StatusOK, "Successfully unfollowed user", echo.Map{"user": user})
}

// GetFollowers lists the users following the path-param user, paginated and
// optionally filtered by the search query param
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseUserIDParam(c)
	if err != nil {
		return err
	}
	page, limit := parsePagination(c, services.DefaultPageSize)

	result, err := h.followService.ListFollowers(userID, page, limit, c.QueryParam("search"))
	if err != nil {
		return followErrorToHTTP(err, "")
	}
	return sendSuccess(c, http.StatusOK, "Followers fetched successfully", result)
}

// GetFollowing lists the users the path-param user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseUserIDParam(c)
	if err != nil {
		return err
	}
	page, limit := parsePagination(c, services.DefaultPageSize)

	result, err := h.followService.ListFollowing(userID, page, limit, c.QueryParam("search"))
	if err != nil {
		return followErrorToHTTP(err, "")
	}
	return sendSuccess(c, http.StatusOK, "Following fetched successfully", result)
}

// CheckFollowStatus reports whether the authenticated user follows the target
func (h *FollowHandler) CheckFollowStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseUserIDParam(c)
	if err != nil {
		return err
	}

	status, err := h.followService.CheckFollowStatus(currentUserID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusOK, "Follow status fetched", status)
}

// GetFollowStats returns the denormalized follower/following counters
func (h *FollowHandler) GetFollowStats(c echo.Context) error {
	userID, err := parseUserIDParam(c)
	if err != nil {
		return err
	}

	stats, err := h.followService.GetFollowStats(userID)
	if err != nil {
		return followErrorToHTTP(err, "")
	}
	return sendSuccess(c, http.StatusOK, "Follow stats fetched", stats)
}

func parseUserIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}

// followErrorToHTTP maps the service error taxonomy onto HTTP status codes.
// Everything outside the taxonomy (including transaction failures, which
// are guaranteed to have left no partial state) is a generic server error.
func followErrorToHTTP(err error, selfMessage string) error {
	switch {
	case errors.Is(err, services.ErrInvalidOperation):
		if selfMessage == "" {
			selfMessage = "Invalid operation"
		}
		return echo.NewHTTPError(http.StatusBadRequest, selfMessage)
	case errors.Is(err, services.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrAlreadyFollowing):
		return echo.NewHTTPError(http.StatusConflict, "You are already following this user")
	case errors.Is(err, services.ErrNotFollowing):
		return echo.NewHTTPError(http.StatusBadRequest, "You are not following this user")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
