package usecase

import (
	"time"

	"event-logistics/internal/data/repository"
	"event-logistics/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Participant   ParticipantService
	Accommodation AccommodationService
	Allocation    AllocationService
	Transport     TransportService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Participant:   NewParticipantService(repo.Participant, log),
		Accommodation: NewAccommodationService(repo, log),
		Allocation:    NewAllocationService(repo, config, log),
		Transport:     NewTransportService(repo, config, log),
	}
}

// clock is the time source shared by services; tests replace it.
type clock func() time.Time
