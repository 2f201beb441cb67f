package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boardapi/internal/dto"
	apierrors "boardapi/internal/errors"
	"boardapi/internal/middleware"
	"boardapi/internal/models"
	"boardapi/internal/services"
)

// ProjectHandler coordinates project and membership HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject creates a project; the caller becomes its ADMIN owner.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestField(c, "name", "name is required")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": dto.ToProjectDTO(*project)})
}

// ListProjects returns the caller's projects with their role in each.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	memberships, err := h.projectService.ListProjectsForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	projects := make([]dto.ProjectWithRoleDTO, len(memberships))
	for i, m := range memberships {
		projects[i] = dto.ProjectWithRoleDTO{
			ProjectDTO: dto.ToProjectDTO(m.Project),
			Role:       m.Role,
		}
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject returns the project with its members and the caller's role.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project := getProject(c)
	member := middleware.GetMembership(c)

	members, err := h.projectService.GetProjectMembers(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch project members")
		return
	}

	memberDTOs := make([]dto.MemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = dto.ToMemberDTO(m, project)
	}

	c.JSON(http.StatusOK, gin.H{
		"project":   dto.ToProjectDTO(project),
		"members":   memberDTOs,
		"your_role": member.Role,
	})
}

// UpdateProject edits the project's name and/or description. ADMIN only.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project := getProject(c)

	type UpdateProjectRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.UpdateProject(project.ID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*updated)})
}

// DeleteProject removes the project and everything it owns. ADMIN only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project := getProject(c)

	if err := h.projectService.DeleteProject(project.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMembers returns the project's members. Any membership suffices.
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	project := getProject(c)

	members, err := h.projectService.GetProjectMembers(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch project members")
		return
	}

	memberDTOs := make([]dto.MemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = dto.ToMemberDTO(m, project)
	}

	c.JSON(http.StatusOK, gin.H{"members": memberDTOs})
}

// ChangeMemberRole sets a member's role. ADMIN only; the owner is immune.
func (h *ProjectHandler) ChangeMemberRole(c *gin.Context) {
	project := getProject(c)

	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type ChangeRoleRequest struct {
		Role string `json:"role" binding:"required"`
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestField(c, "role", "role is required")
		return
	}

	if err := h.projectService.ChangeMemberRole(project.ID, targetID, models.Role(req.Role)); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member role updated"})
}

// RemoveMember removes a member from the project. ADMIN only; the owner is immune.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	project := getProject(c)

	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.projectService.RemoveMember(project.ID, targetID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNameEmpty),
		errors.Is(err, services.ErrProjectNameTooLong):
		apierrors.BadRequestField(c, "name", err.Error())
	case errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequestField(c, "role", err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrOwnerImmutable):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
