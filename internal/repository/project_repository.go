package repository

import (
	"time"

	"boardapi/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwner creates the project and the creator's ADMIN membership in
// one transaction, so a project can never exist without its admin.
func (r *GormProjectRepository) CreateWithOwner(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		member := &models.Membership{
			ProjectID: project.ID,
			UserID:    project.CreatedBy,
			Role:      models.RoleAdmin,
			JoinedAt:  time.Now(),
		}
		return tx.Create(member).Error
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project and everything it owns in one transaction.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Invitation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a membership
func (r *GormProjectRepository) AddMember(member *models.Membership) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific membership
func (r *GormProjectRepository) FindMember(projectID, userID uint64) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.Membership, error) {
	var members []models.Membership
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembershipsByUser lists all projects a user is a member of
func (r *GormProjectRepository) ListMembershipsByUser(userID uint64) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := r.db.Preload("Project").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// UpdateMemberRole changes a membership's role
func (r *GormProjectRepository) UpdateMemberRole(projectID, userID uint64, role models.Role) error {
	return r.db.Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("role", role).Error
}

// RemoveMember removes a membership
func (r *GormProjectRepository) RemoveMember(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.Membership{}).Error
}
