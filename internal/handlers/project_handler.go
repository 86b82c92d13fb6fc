package handlers

import (
	"net/http"

	"github.com/craftfolio/backend/internal/models"
	"github.com/craftfolio/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// ProjectHandler handles portfolio project HTTP requests
type ProjectHandler struct {
	projectRepository repositories.ProjectRepository
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectRepo repositories.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{projectRepository: projectRepo}
}

// RegisterProjectRoutes registers portfolio project routes
func (h *ProjectHandler) RegisterProjectRoutes(g *echo.Group) {
	g.GET("/users/projects", h.GetProjects)
	g.POST("/users/projects", h.AddProject)
	g.PUT("/users/projects/:projectId", h.UpdateProject)
	g.DELETE("/users/projects/:projectId", h.DeleteProject)
}

// GetProjects lists the authenticated user's projects, newest first
func (h *ProjectHandler) GetProjects(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := parsePagination(c, 20)
	skip := int64((page - 1) * limit)

	projects, err := h.projectRepository.GetProjectsByUserID(c.Request().Context(), userID, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusOK, "Projects fetched", echo.Map{"projects": projects})
}

// AddProject creates a portfolio project
func (h *ProjectHandler) AddProject(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project := &models.Project{
		ProjectID:           uuid.NewString(),
		UserID:              userID,
		Title:               req.Title,
		Description:         req.Description,
		ProjectPhoto:        req.ProjectPhoto,
		CurrentlyInProgress: req.CurrentlyInProgress,
		FileAttachment:      req.FileAttachment,
		ProjectURL:          req.ProjectURL,
	}
	if req.StartedIn != "" {
		startedIn, err := parseDate(req.StartedIn)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date")
		}
		project.StartedIn = &startedIn
	}
	if req.CompletedIn != "" && !req.CurrentlyInProgress {
		completedIn, err := parseDate(req.CompletedIn)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid completion date")
		}
		project.CompletedIn = &completedIn
	}

	if err := h.projectRepository.CreateProject(c.Request().Context(), project); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusCreated, "Project added", echo.Map{"project": project})
}

// UpdateProject applies a partial update to a project the user owns
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	projectID := c.Param("projectId")
	if projectID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid project ID")
	}

	var req models.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update := bson.M{}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.ProjectPhoto != nil {
		update["project_photo"] = *req.ProjectPhoto
	}
	if req.StartedIn != nil {
		startedIn, err := parseDate(*req.StartedIn)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date")
		}
		update["started_in"] = startedIn
	}
	if req.CompletedIn != nil {
		if *req.CompletedIn == "" {
			update["completed_in"] = nil
		} else {
			completedIn, err := parseDate(*req.CompletedIn)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid completion date")
			}
			update["completed_in"] = completedIn
		}
	}
	if req.CurrentlyInProgress != nil {
		update["currently_in_progress"] = *req.CurrentlyInProgress
		if *req.CurrentlyInProgress {
			update["completed_in"] = nil
		}
	}
	if req.FileAttachment != nil {
		update["file_attachment"] = *req.FileAttachment
	}
	if req.ProjectURL != nil {
		update["project_url"] = *req.ProjectURL
	}
	if len(update) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Nothing to update")
	}

	project, err := h.projectRepository.UpdateProject(c.Request().Context(), projectID, userID, update)
	if err != nil {
		if err.Error() == "project not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusOK, "Project updated", echo.Map{"project": project})
}

// DeleteProject removes a project the user owns
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	projectID := c.Param("projectId")
	if projectID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid project ID")
	}

	if err := h.projectRepository.DeleteProject(c.Request().Context(), projectID, userID); err != nil {
		if err.Error() == "project not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendSuccess(c, http.StatusOK, "Project deleted", nil)
}
