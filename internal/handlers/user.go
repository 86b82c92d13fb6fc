package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/craftfolio/backend/internal/models"
	"github.com/craftfolio/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles account setup and profile HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers account setup and profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/status", h.GetSetupStatus)
	g.POST("/users/personal-info", h.UpdatePersonalInfo)
	g.POST("/users/design-niche", h.UpdateDesignNiche)
	g.POST("/users/complete", h.CompleteSetup)
	g.GET("/users/profile", h.GetProfile)
	g.PUT("/users/edit-profile", h.EditProfile)
	g.GET("/users/:userId", h.GetUser)
}

func (h *UserHandler) currentUser(c echo.Context) (*models.User, error) {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return user, nil
}

// GetSetupStatus reports how far the user has progressed through account setup
func (h *UserHandler) GetSetupStatus(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	return sendSuccess(c, http.StatusOK, "Setup status fetched", echo.Map{
		"is_account_setup_complete": user.IsAccountSetupComplete,
		"account_setup_step":        user.AccountSetupStep,
		"user": echo.Map{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"username":      user.Username,
			"profile_photo": user.ProfilePhoto,
		},
	})
}

// UpdatePersonalInfo saves step 1 of account setup
func (h *UserHandler) UpdatePersonalInfo(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req models.PersonalInfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	dob, err := parseDate(req.DOB)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date of birth")
	}

	user.Name = req.Name
	user.BioTagline = req.BioTagline
	user.Gender = req.Gender
	user.DOB = &dob
	if req.ProfilePhoto != "" {
		user.ProfilePhoto = req.ProfilePhoto
	}
	if user.AccountSetupStep < 1 {
		user.AccountSetupStep = 1
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return sendSuccess(c, http.StatusOK, "Personal info updated", echo.Map{
		"user":               user,
		"account_setup_step": user.AccountSetupStep,
	})
}

// UpdateDesignNiche saves step 2 of account setup
func (h *UserHandler) UpdateDesignNiche(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req models.DesignNicheRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if user.AccountSetupStep < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Please complete personal info first")
	}

	user.DesignNicheTags = strings.Join(req.DesignNicheTags, ",")
	if user.AccountSetupStep < 2 {
		user.AccountSetupStep = 2
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return sendSuccess(c, http.StatusOK, "Design niche updated", echo.Map{
		"user":               user,
		"account_setup_step": user.AccountSetupStep,
	})
}

// CompleteSetup marks account setup as finished once all steps are done
func (h *UserHandler) CompleteSetup(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	if user.AccountSetupStep < 2 {
		return echo.NewHTTPError(http.StatusBadRequest, "Please complete all setup steps first")
	}

	user.IsAccountSetupComplete = true
	user.AccountSetupStep = 3

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return sendSuccess(c, http.StatusOK, "Account setup completed successfully", echo.Map{"user": user})
}

// GetProfile retrieves the authenticated user's full profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	return sendSuccess(c, http.StatusOK, "Profile fetched", echo.Map{"user": user})
}

// EditProfile applies a partial update to the authenticated user's profile
func (h *UserHandler) EditProfile(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req models.EditProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.BioTagline != nil {
		user.BioTagline = *req.BioTagline
	}
	if req.Summary != nil {
		user.Summary = *req.Summary
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.DOB != nil {
		dob, err := parseDate(*req.DOB)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date of birth")
		}
		user.DOB = &dob
	}
	if req.ProfilePhoto != nil {
		user.ProfilePhoto = *req.ProfilePhoto
	}
	if req.DesignNicheTags != nil {
		user.DesignNicheTags = strings.Join(req.DesignNicheTags, ",")
	}
	if req.SocialLinks != nil {
		if req.SocialLinks.LinkedIn != "" {
			user.SocialLinks.LinkedIn = req.SocialLinks.LinkedIn
		}
		if req.SocialLinks.Facebook != "" {
			user.SocialLinks.Facebook = req.SocialLinks.Facebook
		}
		if req.SocialLinks.Twitter != "" {
			user.SocialLinks.Twitter = req.SocialLinks.Twitter
		}
		if req.SocialLinks.Instagram != "" {
			user.SocialLinks.Instagram = req.SocialLinks.Instagram
		}
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return sendSuccess(c, http.StatusOK, "Profile updated", echo.Map{"user": user})
}

// GetUser retrieves another user's public profile by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusOK, "User fetched", echo.Map{"user": user.Summary()})
}

// parseDate accepts ISO dates with or without a time component
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
