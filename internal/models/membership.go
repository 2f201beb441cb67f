package models

import "time"

type Membership struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// IsOwner reports whether this membership belongs to the project's creator.
// Ownership is derived on every read, never stored.
func (m Membership) IsOwner(p Project) bool {
	return m.UserID == p.CreatedBy
}
