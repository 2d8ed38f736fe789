package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secret-draw-api/internal/domain"
)

// DrawRepository defines the interface for draw data access
type DrawRepository interface {
	Create(ctx context.Context, draw *domain.Draw) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Draw, error)
	Claim(ctx context.Context, drawID, participantID uuid.UUID) (*domain.Participant, bool, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	CountDraws(ctx context.Context) (int64, error)
	CountRedemptions(ctx context.Context) (int64, error)
}

// drawRepositoryImpl is the GORM implementation of DrawRepository
type drawRepositoryImpl struct {
	db *gorm.DB
}

// NewDrawRepository creates a new instance of DrawRepository
func NewDrawRepository(db *gorm.DB) DrawRepository {
	return &drawRepositoryImpl{db: db}
}

// Create inserts the draw row and all of its participant rows in a single
// transaction. Readers never observe a draw with a partial participant set:
// either everything commits or nothing does.
func (r *drawRepositoryImpl) Create(ctx context.Context, draw *domain.Draw) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Participants").Create(draw).Error; err != nil {
			return err
		}
		if len(draw.Participants) == 0 {
			return nil
		}
		return tx.Create(&draw.Participants).Error
	})
}

// FindByID finds a draw by its ID with all participants preloaded
func (r *drawRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Draw, error) {
	var draw domain.Draw
	if err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("participants.name ASC")
		}).
		First(&draw, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &draw, nil
}

// Claim atomically flips the participant's redeemed flag if it is still
// unset and returns the full row either way. The update and the read run in
// one transaction, so concurrent claims on the same row observe exactly one
// logical first claim; the second boolean reports whether this call was it.
// Returns gorm.ErrRecordNotFound when no such participant exists under the
// draw.
func (r *drawRepositoryImpl) Claim(ctx context.Context, drawID, participantID uuid.UUID) (*domain.Participant, bool, error) {
	var participant domain.Participant
	var firstClaim bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Participant{}).
			Where("id = ? AND draw_id = ? AND redeemed = ?", participantID, drawID, false).
			Update("redeemed", true)
		if result.Error != nil {
			return result.Error
		}
		firstClaim = result.RowsAffected == 1

		return tx.
			Where("draw_id = ?", drawID).
			First(&participant, "id = ?", participantID).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &participant, firstClaim, nil
}

// DeleteOlderThan hard-deletes draws created before the cutoff. Participant
// rows go with them via the ON DELETE CASCADE constraint. Returns the number
// of draws removed.
func (r *drawRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.Draw{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountDraws returns the total number of draws
func (r *drawRepositoryImpl) CountDraws(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Draw{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountRedemptions returns the total number of redeemed participants
func (r *drawRepositoryImpl) CountRedemptions(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Participant{}).
		Where("redeemed = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
