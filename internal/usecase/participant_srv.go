package usecase

import (
	"context"
	"fmt"

	"event-logistics/internal/data/repository"
	"event-logistics/internal/dto/response"

	"go.uber.org/zap"
)

type ParticipantService interface {
	ListByEvent(ctx context.Context, tenantID, eventID string) ([]response.ParticipantResponse, error)
}

type participantService struct {
	repo repository.ParticipantRepository
	log  *zap.Logger
}

func NewParticipantService(repo repository.ParticipantRepository, log *zap.Logger) ParticipantService {
	return &participantService{
		repo: repo,
		log:  log.With(zap.String("service", "participant")),
	}
}

func (s *participantService) ListByEvent(ctx context.Context, tenantID, eventID string) ([]response.ParticipantResponse, error) {
	id, err := parseID("event_id", eventID)
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.FindByEvent(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	result := make([]response.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		result = append(result, response.ParticipantToResponse(p))
	}
	return result, nil
}
