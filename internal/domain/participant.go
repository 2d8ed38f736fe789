package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is one name within a draw together with its secretly assigned
// match. Match stores the display name of the matched participant, mirroring
// the persisted layout of the draw tables. Redeemed is monotonic: it only
// ever transitions false to true, exactly once, via DrawRepository.Claim.
type Participant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DrawID    uuid.UUID `gorm:"type:uuid;not null;index:idx_participants_draw_id;uniqueIndex:uq_participants_draw_name,priority:1" json:"drawId"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_participants_draw_name,priority:2" json:"name"`
	Match     string    `gorm:"type:varchar(255);not null" json:"match"`
	Redeemed  bool      `gorm:"not null;default:false" json:"redeemed"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
	Draw      Draw      `gorm:"foreignKey:DrawID;constraint:OnDelete:CASCADE" json:"draw,omitempty"`
}

// TableName specifies the table name for Participant
func (Participant) TableName() string {
	return "participants"
}
