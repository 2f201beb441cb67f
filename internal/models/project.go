package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedBy   uint64    `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Creator     User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Memberships []Membership `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`
	Tasks       []Task       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}
