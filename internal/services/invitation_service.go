package services

import (
	"errors"
	"fmt"

	"boardapi/internal/models"
	"boardapi/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvitationNotFound  = errors.New("invitation not found")
	ErrInvalidInviteRole   = errors.New("invitation role must be MEMBER or VIEWER")
	ErrInviteeNotFound     = errors.New("invitee not found")
	ErrAlreadyMember       = errors.New("user is already a member of this project")
	ErrDuplicateInvitation = errors.New("a pending invitation already exists for this user")
	ErrInvitationProcessed = errors.New("invitation has already been processed")
)

// InvitationService handles the invitation lifecycle: PENDING on creation,
// then exactly one transition to ACCEPTED or DECLINED by the invitee.
type InvitationService struct {
	invitationRepo repository.InvitationRepository
	projectRepo    repository.ProjectRepository
	userRepo       repository.UserRepository
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		projectRepo:    projectRepo,
		userRepo:       userRepo,
	}
}

// InviteInput represents parameters to invite a user to a project.
type InviteInput struct {
	ProjectID       uint64
	InviterID       uint64
	InviteeUsername string
	Role            models.Role
}

// Invite creates a pending invitation for the named user.
func (s *InvitationService) Invite(input InviteInput) (*models.Invitation, error) {
	if input.Role != models.RoleMember && input.Role != models.RoleViewer {
		return nil, ErrInvalidInviteRole
	}

	invitee, err := s.userRepo.FindByUsername(input.InviteeUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteeNotFound
		}
		return nil, fmt.Errorf("failed to find invitee: %w", err)
	}

	if _, err := s.projectRepo.FindMember(input.ProjectID, invitee.ID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	if _, err := s.invitationRepo.FindPending(input.ProjectID, invitee.ID); err == nil {
		return nil, ErrDuplicateInvitation
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending invitations: %w", err)
	}

	invitation := &models.Invitation{
		ProjectID: input.ProjectID,
		InviterID: input.InviterID,
		InviteeID: invitee.ID,
		Role:      input.Role,
		Status:    models.InvitationPending,
	}

	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return invitation, nil
}

// ListPendingForUser returns a user's pending invitations.
func (s *InvitationService) ListPendingForUser(userID uint64) ([]models.Invitation, error) {
	invitations, err := s.invitationRepo.ListPendingByInvitee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// Accept transitions the invitation to ACCEPTED and creates the membership
// with the invitation's role. Only the invitee may accept, exactly once.
func (s *InvitationService) Accept(invitationID, actorID uint64) (*models.Invitation, error) {
	invitation, err := s.findForInvitee(invitationID, actorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.FindMember(invitation.ProjectID, actorID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	if err := s.invitationRepo.Accept(invitation); err != nil {
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	invitation.Status = models.InvitationAccepted
	return invitation, nil
}

// Decline transitions the invitation to DECLINED. Only the invitee may
// decline, exactly once.
func (s *InvitationService) Decline(invitationID, actorID uint64) (*models.Invitation, error) {
	invitation, err := s.findForInvitee(invitationID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.invitationRepo.Decline(invitation); err != nil {
		return nil, fmt.Errorf("failed to decline invitation: %w", err)
	}

	invitation.Status = models.InvitationDeclined
	return invitation, nil
}

// findForInvitee loads a pending invitation addressed to the actor. A wrong
// actor sees the same error as a missing invitation.
func (s *InvitationService) findForInvitee(invitationID, actorID uint64) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.FindByID(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if invitation.InviteeID != actorID {
		return nil, ErrInvitationNotFound
	}

	if invitation.Terminal() {
		return nil, ErrInvitationProcessed
	}

	return invitation, nil
}
