package usecase

import (
	"context"
	"fmt"
	"sort"

	"event-logistics/internal/data/repository"
	"event-logistics/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccommodationService interface {
	ListVendors(ctx context.Context, tenantID string) ([]response.VendorResponse, error)
	ListRooms(ctx context.Context, tenantID, guesthouseID string) ([]response.RoomResponse, error)
	RoomOccupants(ctx context.Context, tenantID, roomID string) (*response.RoomOccupantsResponse, error)
}

type accommodationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAccommodationService(repo *repository.Repository, log *zap.Logger) AccommodationService {
	return &accommodationService{
		repo: repo,
		log:  log.With(zap.String("service", "accommodation")),
	}
}

func (s *accommodationService) ListVendors(ctx context.Context, tenantID string) ([]response.VendorResponse, error) {
	vendors, err := s.repo.Vendor.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}

	result := make([]response.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		result = append(result, response.VendorToResponse(v))
	}
	return result, nil
}

func (s *accommodationService) ListRooms(ctx context.Context, tenantID, guesthouseID string) ([]response.RoomResponse, error) {
	var filter *uuid.UUID
	if guesthouseID != "" {
		id, err := parseID("guesthouse_id", guesthouseID)
		if err != nil {
			return nil, err
		}
		filter = &id
	}

	rooms, err := s.repo.Room.ListByGuesthouse(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	result := make([]response.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, response.RoomToResponse(r))
	}
	return result, nil
}

func (s *accommodationService) RoomOccupants(ctx context.Context, tenantID, roomID string) (*response.RoomOccupantsResponse, error) {
	id, err := parseID("room_id", roomID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repo.Room.FindByIDs(ctx, tenantID, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomID)
	}

	allocs, err := s.repo.Allocation.ListActiveByRoom(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("list room allocations: %w", err)
	}

	var participantIDs []uuid.UUID
	resp := &response.RoomOccupantsResponse{
		Room:        response.RoomToResponse(rooms[0]),
		Occupants:   []response.ParticipantResponse{},
		Allocations: make([]response.AllocationResponse, 0, len(allocs)),
	}
	for _, a := range allocs {
		resp.Allocations = append(resp.Allocations, response.AllocationToResponse(a))
		participantIDs = append(participantIDs, a.ParticipantIDs...)
	}

	participants, err := s.repo.Participant.FindByIDs(ctx, tenantID, participantIDs)
	if err != nil {
		return nil, fmt.Errorf("load room occupants: %w", err)
	}
	sort.Slice(participants, func(i, j int) bool { return participants[i].Name < participants[j].Name })
	for _, p := range participants {
		resp.Occupants = append(resp.Occupants, response.ParticipantToResponse(p))
	}
	return resp, nil
}
