package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"secret-draw-api/internal/domain"
)

// MockDrawRepository is a mock implementation of repository.DrawRepository
type MockDrawRepository struct {
	CreateFunc           func(ctx context.Context, draw *domain.Draw) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Draw, error)
	ClaimFunc            func(ctx context.Context, drawID, participantID uuid.UUID) (*domain.Participant, bool, error)
	DeleteOlderThanFunc  func(ctx context.Context, cutoff time.Time) (int64, error)
	CountDrawsFunc       func(ctx context.Context) (int64, error)
	CountRedemptionsFunc func(ctx context.Context) (int64, error)
}

func (m *MockDrawRepository) Create(ctx context.Context, draw *domain.Draw) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, draw)
	}
	return nil
}

func (m *MockDrawRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Draw, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockDrawRepository) Claim(ctx context.Context, drawID, participantID uuid.UUID) (*domain.Participant, bool, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(ctx, drawID, participantID)
	}
	return nil, false, nil
}

func (m *MockDrawRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteOlderThanFunc != nil {
		return m.DeleteOlderThanFunc(ctx, cutoff)
	}
	return 0, nil
}

func (m *MockDrawRepository) CountDraws(ctx context.Context) (int64, error) {
	if m.CountDrawsFunc != nil {
		return m.CountDrawsFunc(ctx)
	}
	return 0, nil
}

func (m *MockDrawRepository) CountRedemptions(ctx context.Context) (int64, error) {
	if m.CountRedemptionsFunc != nil {
		return m.CountRedemptionsFunc(ctx)
	}
	return 0, nil
}

// MockNotifier records redemption notifications for assertions
type MockNotifier struct {
	Notified []uuid.UUID
}

func (m *MockNotifier) NotifyRedeemed(drawID uuid.UUID, participant *domain.Participant) {
	m.Notified = append(m.Notified, participant.ID)
}
