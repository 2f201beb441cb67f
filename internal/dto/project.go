package dto

import (
	"time"

	"boardapi/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   uint64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MemberDTO represents a project member with the derived owner flag.
type MemberDTO struct {
	UserID   uint64      `json:"user_id"`
	Username string      `json:"username,omitempty"`
	Role     models.Role `json:"role"`
	IsOwner  bool        `json:"is_owner"`
	JoinedAt time.Time   `json:"joined_at"`
}

// ProjectWithRoleDTO pairs a project with the caller's role in it.
type ProjectWithRoleDTO struct {
	ProjectDTO
	Role models.Role `json:"role"`
}

// InvitationDTO represents an invitation in API responses
type InvitationDTO struct {
	ID          uint64                  `json:"id"`
	ProjectID   uint64                  `json:"project_id"`
	ProjectName string                  `json:"project_name,omitempty"`
	InviterID   uint64                  `json:"inviter_id"`
	Inviter     string                  `json:"inviter,omitempty"`
	Role        models.Role             `json:"role"`
	Status      models.InvitationStatus `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToMemberDTO converts a membership; the owner flag is recomputed from the
// project on every read, it is never stored.
func ToMemberDTO(member models.Membership, project models.Project) MemberDTO {
	dto := MemberDTO{
		UserID:   member.UserID,
		Role:     member.Role,
		IsOwner:  member.IsOwner(project),
		JoinedAt: member.JoinedAt,
	}
	if member.User.ID != 0 {
		dto.Username = member.User.Username
	}
	return dto
}

// ToInvitationDTO converts an Invitation model to InvitationDTO
func ToInvitationDTO(invitation models.Invitation) InvitationDTO {
	dto := InvitationDTO{
		ID:        invitation.ID,
		ProjectID: invitation.ProjectID,
		InviterID: invitation.InviterID,
		Role:      invitation.Role,
		Status:    invitation.Status,
		CreatedAt: invitation.CreatedAt,
	}
	if invitation.Project.ID != 0 {
		dto.ProjectName = invitation.Project.Name
	}
	if invitation.Inviter.ID != 0 {
		dto.Inviter = invitation.Inviter.Username
	}
	return dto
}
