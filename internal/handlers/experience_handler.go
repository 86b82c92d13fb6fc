package handlers

import (
	"net/http"
	"strconv"

	"github.com/craftfolio/backend/internal/models"
	"github.com/craftfolio/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ExperienceHandler handles experience and education sub-resources of a profile
type ExperienceHandler struct {
	experienceRepository repositories.ExperienceRepository
}

// NewExperienceHandler creates a new ExperienceHandler
func NewExperienceHandler(experienceRepo repositories.ExperienceRepository) *ExperienceHandler {
	return &ExperienceHandler{experienceRepository: experienceRepo}
}

// RegisterExperienceRoutes registers experience/education routes
func (h *ExperienceHandler) RegisterExperienceRoutes(g *echo.Group) {
	g.GET("/users/get-experience", h.GetExperience)
	g.POST("/users/experience", h.AddExperience)
	g.PUT("/users/update-experience/:experienceId", h.UpdateExperience)
	g.DELETE("/users/delete-experience/:experienceId", h.DeleteExperience)

	g.GET("/users/get-education", h.GetEducation)
	g.POST("/users/add-education", h.AddEducation)
	g.PUT("/users/update-education/:educationId", h.UpdateEducation)
	g.DELETE("/users/delete-education/:educationId", h.DeleteEducation)
}

// GetExperience lists the authenticated user's work history
func (h *ExperienceHandler) GetExperience(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	experience, err := h.experienceRepository.GetExperienceByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusOK, "Experience fetched", echo.Map{"experience": experience})
}

// AddExperience appends a work-history entry
func (h *ExperienceHandler) AddExperience(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.AddExperienceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	startedIn, err := parseDate(req.StartedIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date")
	}

	experience := models.Experience{
		UserID:           userID,
		Position:         req.Position,
		Organisation:     req.Organisation,
		StartedIn:        startedIn,
		CurrentlyWorking: req.CurrentlyWorking,
		Summary:          req.Summary,
	}
	if req.WorkedTill != "" && !req.CurrentlyWorking {
		workedTill, err := parseDate(req.WorkedTill)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid end date")
		}
		experience.WorkedTill = &workedTill
	}

	if err := h.experienceRepository.CreateExperience(&experience); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusCreated, "Experience added", echo.Map{"experience": experience})
}

// UpdateExperience applies a partial update to a work-history entry
func (h *ExperienceHandler) UpdateExperience(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	experienceID, err := strconv.ParseUint(c.Param("experienceId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid experience ID")
	}

	var req models.UpdateExperienceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	experience, err := h.experienceRepository.GetExperienceByID(uint(experienceID), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Experience not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Position != nil {
		experience.Position = *req.Position
	}
	if req.Organisation != nil {
		experience.Organisation = *req.Organisation
	}
	if req.StartedIn != nil {
		startedIn, err := parseDate(*req.StartedIn)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date")
		}
		experience.StartedIn = startedIn
	}
	if req.WorkedTill != nil {
		if *req.WorkedTill == "" {
			experience.WorkedTill = nil
		} else {
			workedTill, err := parseDate(*req.WorkedTill)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid end date")
			}
			experience.WorkedTill = &workedTill
		}
	}
	if req.CurrentlyWorking != nil {
		experience.CurrentlyWorking = *req.CurrentlyWorking
		if *req.CurrentlyWorking {
			experience.WorkedTill = nil
		}
	}
	if req.Summary != nil {
		experience.Summary = *req.Summary
	}

	if err := h.experienceRepository.UpdateExperience(experience); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusOK, "Experience updated", echo.Map{"experience": experience})
}

// DeleteExperience removes a work-history entry
func (h *ExperienceHandler) DeleteExperience(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	experienceID, err := strconv.ParseUint(c.Param("experienceId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid experience ID")
	}

	rows, err := h.experienceRepository.DeleteExperience(uint(experienceID), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if rows == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Experience not found")
	}
	return sendSuccess(c, http.StatusOK, "Experience deleted", nil)
}

// GetEducation lists the authenticated user's study history
func (h *ExperienceHandler) GetEducation(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	education, err := h.experienceRepository.GetEducationByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusOK, "Education fetched", echo.Map{"education": education})
}

// AddEducation appends a study-history entry
func (h *ExperienceHandler) AddEducation(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.AddEducationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	startedIn, err := parseDate(req.StartedIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date")
	}

	education := models.Education{
		UserID:            userID,
		Degree:            req.Degree,
		Stream:            req.Stream,
		SchoolOrCollege:   req.SchoolOrCollege,
		StartedIn:         startedIn,
		CurrentlyStudying: req.CurrentlyStudying,
		Summary:           req.Summary,
	}
	if req.StudiedTill != "" && !req.CurrentlyStudying {
		studiedTill, err := parseDate(req.StudiedTill)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid end date")
		}
		education.StudiedTill = &studiedTill
	}

	if err := h.experienceRepository.CreateEducation(&education); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusCreated, "Education added", echo.Map{"education": education})
}

// UpdateEducation applies a partial update to a study-history entry
func (h *ExperienceHandler) UpdateEducation(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	educationID, err := strconv.ParseUint(c.Param("educationId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid education ID")
	}

	var req models.UpdateEducationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	education, err := h.experienceRepository.GetEducationByID(uint(educationID), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Education not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Degree != nil {
		education.Degree = *req.Degree
	}
	if req.Stream != nil {
		education.Stream = *req.Stream
	}
	if req.SchoolOrCollege != nil {
		education.SchoolOrCollege = *req.SchoolOrCollege
	}
	if req.StartedIn != nil {
		startedIn, err := parseDate(*req.StartedIn)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date")
		}
		education.StartedIn = startedIn
	}
	if req.StudiedTill != nil {
		if *req.StudiedTill == "" {
			education.StudiedTill = nil
		} else {
			studiedTill, err := parseDate(*req.StudiedTill)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid end date")
			}
			education.StudiedTill = &studiedTill
		}
	}
	if req.CurrentlyStudying != nil {
		education.CurrentlyStudying = *req.CurrentlyStudying
		if *req.CurrentlyStudying {
			education.StudiedTill = nil
		}
	}
	if req.Summary != nil {
		education.Summary = *req.Summary
	}

	if err := h.experienceRepository.UpdateEducation(education); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusOK, "Education updated", echo.Map{"education": education})
}

// DeleteEducation removes a study-history entry
func (h *ExperienceHandler) DeleteEducation(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	educationID, err := strconv.ParseUint(c.Param("educationId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid education ID")
	}

	rows, err := h.experienceRepository.DeleteEducation(uint(educationID), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if rows == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Education not found")
	}
	return sendSuccess(c, http.StatusOK, "Education deleted", nil)
}
