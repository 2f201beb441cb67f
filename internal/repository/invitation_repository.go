package repository

import (
	"time"

	"boardapi/internal/models"
	"gorm.io/gorm"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// Create creates a new invitation
func (r *GormInvitationRepository) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// FindByID finds an invitation by ID
func (r *GormInvitationRepository) FindByID(id uint64) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Preload("Project").First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindPending finds the pending invitation for (project, invitee), if any
func (r *GormInvitationRepository) FindPending(projectID, inviteeID uint64) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.
		Where("project_id = ? AND invitee_id = ? AND status = ?",
			projectID, inviteeID, models.InvitationPending).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListPendingByInvitee lists a user's pending invitations
func (r *GormInvitationRepository) ListPendingByInvitee(inviteeID uint64) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.Preload("Project").Preload("Inviter").
		Where("invitee_id = ? AND status = ?", inviteeID, models.InvitationPending).
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

// Accept marks the invitation accepted and creates the membership with the
// invitation's role, atomically.
func (r *GormInvitationRepository) Accept(invitation *models.Invitation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(invitation).
			Update("status", models.InvitationAccepted).Error
		if err != nil {
			return err
		}

		member := &models.Membership{
			ProjectID: invitation.ProjectID,
			UserID:    invitation.InviteeID,
			Role:      invitation.Role,
			JoinedAt:  time.Now(),
		}
		return tx.Create(member).Error
	})
}

// Decline marks the invitation declined
func (r *GormInvitationRepository) Decline(invitation *models.Invitation) error {
	return r.db.Model(invitation).
		Update("status", models.InvitationDeclined).Error
}
