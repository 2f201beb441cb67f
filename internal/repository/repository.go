package repository

import (
	"boardapi/internal/models"
)

// TaskRepository defines the interface for task data access. Mutations keep
// the per-(project, status) position range dense: every committed state has
// positions 0..n-1 with no gaps or duplicates.
type TaskRepository interface {
	// CreateAtTail creates a task appended at the end of its column.
	CreateAtTail(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject returns a project's tasks ordered by column, then position.
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update persists edits to a task's content fields. It never touches
	// status or position.
	Update(task *models.Task) error

	// DeleteClosingGap deletes a task and shifts the rest of its column down
	// in the same transaction.
	DeleteClosingGap(id uint64) error

	// Move relocates a task to (status, position), clamping the requested
	// position and shifting affected rows in a single transaction. Returns
	// the fresh moved row.
	Move(id uint64, status models.TaskStatus, requested int) (*models.Task, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// CreateWithOwner creates a project and its creator's ADMIN membership atomically.
	CreateWithOwner(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project and everything it owns in one transaction.
	Delete(id uint64) error

	// AddMember adds a membership
	AddMember(member *models.Membership) error

	// FindMember finds a specific membership
	FindMember(projectID, userID uint64) (*models.Membership, error)

	// ListMembers lists all members of a project
	ListMembers(projectID uint64) ([]models.Membership, error)

	// ListMembershipsByUser lists all projects a user belongs to
	ListMembershipsByUser(userID uint64) ([]models.Membership, error)

	// UpdateMemberRole changes a membership's role
	UpdateMemberRole(projectID, userID uint64, role models.Role) error

	// RemoveMember removes a membership
	RemoveMember(projectID, userID uint64) error
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create creates a new invitation
	Create(invitation *models.Invitation) error

	// FindByID finds an invitation by ID
	FindByID(id uint64) (*models.Invitation, error)

	// FindPending finds the pending invitation for (project, invitee), if any
	FindPending(projectID, inviteeID uint64) (*models.Invitation, error)

	// ListPendingByInvitee lists a user's pending invitations
	ListPendingByInvitee(inviteeID uint64) ([]models.Invitation, error)

	// Accept marks the invitation accepted and creates the membership atomically.
	Accept(invitation *models.Invitation) error

	// Decline marks the invitation declined
	Decline(invitation *models.Invitation) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
