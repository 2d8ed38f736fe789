package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"secret-draw-api/internal/database"
	"secret-draw-api/internal/domain"
	"secret-draw-api/internal/dto"
	"secret-draw-api/internal/matching"
	"secret-draw-api/internal/metrics"
	"secret-draw-api/internal/repository"
	"secret-draw-api/internal/response"
)

// RedemptionNotifier receives an event for every logical first claim so
// connected clients can gray out the name promptly. Implemented by the
// websocket event hub.
type RedemptionNotifier interface {
	NotifyRedeemed(drawID uuid.UUID, participant *domain.Participant)
}

// DrawService defines the interface for draw business logic
type DrawService interface {
	CreateDraw(ctx context.Context, req *dto.CreateDrawRequest) (*dto.CreateDrawResponse, error)
	GetDraw(ctx context.Context, drawID uuid.UUID, boundParticipantID *uuid.UUID) (*dto.DrawResponse, error)
	Redeem(ctx context.Context, drawID, participantID uuid.UUID) (*dto.RedeemResponse, error)
}

// drawServiceImpl is the implementation of DrawService
type drawServiceImpl struct {
	drawRepo  repository.DrawRepository
	generator *matching.Generator
	notifier  RedemptionNotifier
	metrics   *metrics.Metrics
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewDrawService creates a new instance of DrawService. notifier and m may
// be nil; cacheTTL <= 0 disables the Redis read cache.
func NewDrawService(
	drawRepo repository.DrawRepository,
	generator *matching.Generator,
	notifier RedemptionNotifier,
	m *metrics.Metrics,
	cacheTTL time.Duration,
	logger *zap.Logger,
) DrawService {
	return &drawServiceImpl{
		drawRepo:  drawRepo,
		generator: generator,
		notifier:  notifier,
		metrics:   m,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// CreateDraw validates the submitted names, assigns every participant a
// match via a random derangement and persists the whole draw atomically.
// Blank entries are dropped before validation, matching how empty form
// inputs arrive from the organizer's browser.
func (s *drawServiceImpl) CreateDraw(ctx context.Context, req *dto.CreateDrawRequest) (*dto.CreateDrawResponse, error) {
	names := make([]string, 0, len(req.Participants))
	for _, raw := range req.Participants {
		if name := strings.TrimSpace(raw); name != "" {
			names = append(names, name)
		}
	}

	if len(names) < 3 {
		return nil, response.NewAppError(response.ErrCodeValidation, "You need to provide at least 3 participants", "")
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, response.NewAppError(response.ErrCodeValidation, "Participant names must be unique", name)
		}
		seen[name] = struct{}{}
	}

	matches := s.generator.Derange(names)

	drawID := uuid.New()
	participants := make([]domain.Participant, len(names))
	for i, name := range names {
		participants[i] = domain.Participant{
			ID:     uuid.New(),
			DrawID: drawID,
			Name:   name,
			Match:  matches[i],
		}
	}

	draw := &domain.Draw{ID: drawID, Participants: participants}
	if err := s.drawRepo.Create(ctx, draw); err != nil {
		s.logger.Error("Failed to create draw",
			zap.Int("participants", len(names)),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create the draw. Please try again.", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementDrawCreated()
	}
	s.logger.Info("Draw created",
		zap.String("draw_id", drawID.String()),
		zap.Int("participants", len(names)),
	)

	return &dto.CreateDrawResponse{DrawID: drawID}, nil
}

// GetDraw returns the draw projection used to render the selection list.
// The assigned match is included only on the entry the caller is bound to.
func (s *drawServiceImpl) GetDraw(ctx context.Context, drawID uuid.UUID, boundParticipantID *uuid.UUID) (*dto.DrawResponse, error) {
	draw, err := s.findDraw(ctx, drawID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Draw not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch draw", err.Error())
	}

	resp := &dto.DrawResponse{
		ID:           draw.ID,
		CreatedAt:    draw.CreatedAt,
		Participants: make([]dto.ParticipantStatusResponse, len(draw.Participants)),
	}
	for i, p := range draw.Participants {
		entry := dto.ParticipantStatusResponse{
			ID:       p.ID,
			Name:     p.Name,
			Redeemed: p.Redeemed,
		}
		if boundParticipantID != nil && p.ID == *boundParticipantID {
			match := p.Match
			entry.Match = &match
		}
		resp.Participants[i] = entry
	}
	return resp, nil
}

// Redeem marks the chosen participant as redeemed and reveals its match.
// Claiming an already-redeemed participant is not an error: the same row
// comes back unchanged, which is what lets a returning visitor see their
// match again.
func (s *drawServiceImpl) Redeem(ctx context.Context, drawID, participantID uuid.UUID) (*dto.RedeemResponse, error) {
	participant, firstClaim, err := s.drawRepo.Claim(ctx, drawID, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Participant not found", "")
		}
		s.logger.Error("Failed to redeem participant",
			zap.String("draw_id", drawID.String()),
			zap.String("participant_id", participantID.String()),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reveal the name. Please try again.", err.Error())
	}

	s.invalidateCachedDraw(ctx, drawID)

	if firstClaim {
		if s.metrics != nil {
			s.metrics.IncrementRedemption()
		}
		if s.notifier != nil {
			s.notifier.NotifyRedeemed(drawID, participant)
		}
		s.logger.Info("Participant redeemed",
			zap.String("draw_id", drawID.String()),
			zap.String("participant_id", participantID.String()),
		)
	}

	return &dto.RedeemResponse{
		ParticipantID: participant.ID,
		Name:          participant.Name,
		Match:         participant.Match,
		Redeemed:      true,
	}, nil
}

// findDraw reads through the optional Redis cache. Cache failures fall back
// to the store silently; the cache is an optimization, never a source of
// truth.
func (s *drawServiceImpl) findDraw(ctx context.Context, drawID uuid.UUID) (*domain.Draw, error) {
	rdb := database.GetRedis()
	key := drawCacheKey(drawID)

	if rdb != nil && s.cacheTTL > 0 {
		if data, err := rdb.Get(ctx, key).Bytes(); err == nil {
			var draw domain.Draw
			if err := json.Unmarshal(data, &draw); err == nil {
				return &draw, nil
			}
		}
	}

	draw, err := s.drawRepo.FindByID(ctx, drawID)
	if err != nil {
		return nil, err
	}

	if rdb != nil && s.cacheTTL > 0 {
		if data, err := json.Marshal(draw); err == nil {
			if err := rdb.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache draw", zap.String("draw_id", drawID.String()), zap.Error(err))
			}
		}
	}
	return draw, nil
}

func (s *drawServiceImpl) invalidateCachedDraw(ctx context.Context, drawID uuid.UUID) {
	if rdb := database.GetRedis(); rdb != nil {
		if err := rdb.Del(ctx, drawCacheKey(drawID)).Err(); err != nil {
			s.logger.Warn("Failed to invalidate cached draw", zap.String("draw_id", drawID.String()), zap.Error(err))
		}
	}
}

func drawCacheKey(drawID uuid.UUID) string {
	return "draw:" + drawID.String()
}
