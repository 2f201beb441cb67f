package services

import (
	"errors"
	"fmt"
	"strings"

	"boardapi/internal/constants"
	"boardapi/internal/models"
	"boardapi/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectNameEmpty   = errors.New("project name cannot be empty")
	ErrProjectNameTooLong = errors.New("project name must be at most 255 characters")
	ErrInvalidRole        = errors.New("role must be one of ADMIN, MEMBER, VIEWER")
	ErrMemberNotFound     = errors.New("project member not found")
	ErrOwnerImmutable     = errors.New("the project owner's membership cannot be changed")
)

// ProjectService provides business logic for projects and memberships.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	CreatorID   uint64
}

// CreateProject creates a project; the creator's ADMIN membership is created
// in the same transaction.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameEmpty
	}
	if len(name) > constants.MaxNameLength {
		return nil, ErrProjectNameTooLong
	}

	project := &models.Project{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedBy:   input.CreatorID,
	}

	if err := s.projectRepo.CreateWithOwner(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjectsForUser returns the memberships (with projects) a user holds.
func (s *ProjectService) ListProjectsForUser(userID uint64) ([]models.Membership, error) {
	memberships, err := s.projectRepo.ListMembershipsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return memberships, nil
}

// GetProjectMembers returns all members of a project.
func (s *ProjectService) GetProjectMembers(projectID uint64) ([]models.Membership, error) {
	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return members, nil
}

// UpdateProjectInput represents editable project fields.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// UpdateProject edits a project's name and/or description.
func (s *ProjectService) UpdateProject(projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProjectNameEmpty
		}
		if len(name) > constants.MaxNameLength {
			return nil, ErrProjectNameTooLong
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project and everything it owns.
func (s *ProjectService) DeleteProject(projectID uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// ChangeMemberRole sets a member's role. The owner's membership is immune to
// role changes by anyone.
func (s *ProjectService) ChangeMemberRole(projectID, targetID uint64, role models.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	member, err := s.projectRepo.FindMember(projectID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if member.IsOwner(*project) {
		return ErrOwnerImmutable
	}

	if err := s.projectRepo.UpdateMemberRole(projectID, targetID, role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	return nil
}

// RemoveMember removes a member from the project. The owner cannot be removed.
func (s *ProjectService) RemoveMember(projectID, targetID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	member, err := s.projectRepo.FindMember(projectID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if member.IsOwner(*project) {
		return ErrOwnerImmutable
	}

	if err := s.projectRepo.RemoveMember(projectID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
