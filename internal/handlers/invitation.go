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

// InvitationHandler coordinates invitation HTTP handlers.
type InvitationHandler struct {
	invitationService *services.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// Invite creates a pending invitation. ADMIN only.
func (h *InvitationHandler) Invite(c *gin.Context) {
	project := getProject(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type InviteRequest struct {
		Username string `json:"username" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "username and role are required")
		return
	}

	invitation, err := h.invitationService.Invite(services.InviteInput{
		ProjectID:       project.ID,
		InviterID:       userID,
		InviteeUsername: req.Username,
		Role:            models.Role(req.Role),
	})
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invitation": dto.ToInvitationDTO(*invitation)})
}

// ListMyInvitations returns the caller's pending invitations.
func (h *InvitationHandler) ListMyInvitations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invitations, err := h.invitationService.ListPendingForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch invitations")
		return
	}

	items := make([]dto.InvitationDTO, len(invitations))
	for i, inv := range invitations {
		items[i] = dto.ToInvitationDTO(inv)
	}

	c.JSON(http.StatusOK, gin.H{"invitations": items})
}

// Accept accepts an invitation addressed to the caller.
func (h *InvitationHandler) Accept(c *gin.Context) {
	h.transition(c, h.invitationService.Accept)
}

// Decline declines an invitation addressed to the caller.
func (h *InvitationHandler) Decline(c *gin.Context) {
	h.transition(c, h.invitationService.Decline)
}

func (h *InvitationHandler) transition(c *gin.Context, fn func(uint64, uint64) (*models.Invitation, error)) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invitationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invitation ID")
		return
	}

	invitation, err := fn(invitationID, userID)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitation": dto.ToInvitationDTO(*invitation)})
}

func respondInvitationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInviteRole):
		apierrors.BadRequestField(c, "role", err.Error())
	case errors.Is(err, services.ErrInviteeNotFound),
		errors.Is(err, services.ErrInvitationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrDuplicateInvitation),
		errors.Is(err, services.ErrInvitationProcessed):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
