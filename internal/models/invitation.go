package models

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
)

type Invitation struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	ProjectID uint64           `gorm:"not null;index" json:"project_id"`
	InviterID uint64           `gorm:"not null" json:"inviter_id"`
	InviteeID uint64           `gorm:"not null;index" json:"invitee_id"`
	Role      Role             `gorm:"type:varchar(20);not null" json:"role"`
	Status    InvitationStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Inviter User    `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
	Invitee User    `gorm:"foreignKey:InviteeID" json:"invitee,omitempty"`
}

// Terminal reports whether the invitation can no longer change state.
func (i Invitation) Terminal() bool {
	return i.Status != InvitationPending
}
