package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateDrawRequest is the payload for creating a draw
type CreateDrawRequest struct {
	Participants []string `json:"participants" binding:"required"`
}

// CreateDrawResponse returns the opaque id of the new draw, used to build
// the shareable link
type CreateDrawResponse struct {
	DrawID uuid.UUID `json:"drawId"`
}

// ParticipantStatusResponse is one entry of the "choose your name" list.
// Match is populated only for the participant the caller is bound to; for
// everyone else it is withheld.
type ParticipantStatusResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Redeemed bool      `json:"redeemed"`
	Match    *string   `json:"match,omitempty"`
}

// DrawResponse is the public projection of a draw
type DrawResponse struct {
	ID           uuid.UUID                   `json:"id"`
	CreatedAt    time.Time                   `json:"createdAt"`
	Participants []ParticipantStatusResponse `json:"participants"`
}

// RedeemRequest identifies the participant the visitor claims to be
type RedeemRequest struct {
	ParticipantID uuid.UUID `json:"participantId" binding:"required"`
}

// RedeemResponse reveals the claimed participant's assigned match
type RedeemResponse struct {
	ParticipantID uuid.UUID `json:"participantId"`
	Name          string    `json:"name"`
	Match         string    `json:"match"`
	Redeemed      bool      `json:"redeemed"`
}
