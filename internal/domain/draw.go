package domain

import (
	"time"

	"github.com/google/uuid"
)

// Draw represents one completed matching session. Its random uuid doubles as
// the capability token embedded in the shareable link, so rows are never
// keyed by sequential integers. A draw is created once with its full
// participant set and never mutated afterwards.
type Draw struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time     `gorm:"not null" json:"updatedAt"`
	Participants []Participant `gorm:"foreignKey:DrawID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
}

// TableName specifies the table name for Draw
func (Draw) TableName() string {
	return "draws"
}
