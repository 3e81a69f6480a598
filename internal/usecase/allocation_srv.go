package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-logistics/internal/data/entity"
	"event-logistics/internal/data/repository"
	"event-logistics/internal/dto/request"
	"event-logistics/internal/dto/response"
	"event-logistics/internal/engine/allocation"
	"event-logistics/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AllocationService interface {
	// Validate reports every rule the request breaks without writing anything.
	Validate(ctx context.Context, tenantID string, req *request.AllocationRequest) (*response.ValidationReportResponse, error)
	Create(ctx context.Context, tenantID string, req *request.AllocationRequest) ([]response.AllocationResponse, error)
	List(ctx context.Context, tenantID, eventID string) ([]response.AllocationResponse, error)
	Summary(ctx context.Context, tenantID, eventID string) (*response.SummaryResponse, error)
	CheckIn(ctx context.Context, tenantID, allocationID string) (*response.AllocationResponse, error)
	BulkCheckIn(ctx context.Context, tenantID string, req *request.BulkCheckInRequest) (*response.BulkCheckInResponse, error)
	Delete(ctx context.Context, tenantID, allocationID string) error
}

type allocationService struct {
	repo      *repository.Repository
	loc       *time.Location
	now       clock
	validator *allocation.Validator
	log       *zap.Logger
}

func NewAllocationService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AllocationService {
	return newAllocationService(repo, config.App.Location, time.Now, log)
}

func newAllocationService(repo *repository.Repository, loc *time.Location, now clock, log *zap.Logger) *allocationService {
	if loc == nil {
		loc = time.UTC
	}
	return &allocationService{
		repo:      repo,
		loc:       loc,
		now:       now,
		validator: allocation.NewValidator(loc, now),
		log:       log.With(zap.String("service", "allocation")),
	}
}

// checked is a request that went through every validation step.
type checked struct {
	req          allocation.Request
	participants []entity.Participant
	units        allocation.Units
	result       allocation.Result
}

func (s *allocationService) Validate(ctx context.Context, tenantID string, req *request.AllocationRequest) (*response.ValidationReportResponse, error) {
	c, err := s.check(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	return &response.ValidationReportResponse{
		Valid:  c.result.OK(),
		Errors: append([]allocation.ValidationError{}, c.result.Errors...),
	}, nil
}

func (s *allocationService) Create(ctx context.Context, tenantID string, req *request.AllocationRequest) ([]response.AllocationResponse, error) {
	c, err := s.check(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	if err := c.result.Err(); err != nil {
		s.log.Warn("Allocation rejected",
			zap.String("tenant_id", tenantID),
			zap.Any("kinds", c.result.Kinds()),
		)
		return nil, err
	}

	plan, err := allocation.Assign(c.req, c.participants, c.units, allocation.AssignOptions{
		TenantID: tenantID,
		Now:      s.now(),
	})
	if err != nil {
		s.log.Error("Validated allocation could not be placed", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Allocation.CreateWithOccupancy(ctx, plan.Allocations, plan.Deltas); err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			s.log.Warn("Allocation lost a capacity race", zap.Error(err))
		}
		return nil, fmt.Errorf("create allocation: %w", err)
	}

	s.log.Info("Allocation created",
		zap.String("tenant_id", tenantID),
		zap.String("type", string(c.req.Type)),
		zap.Int("participants", len(c.participants)),
		zap.Int("allocations", len(plan.Allocations)),
	)

	result := make([]response.AllocationResponse, 0, len(plan.Allocations))
	for _, a := range plan.Allocations {
		result = append(result, response.AllocationToResponse(a))
	}
	return result, nil
}

// check loads the participants and units a request names and runs the
// validator, then adds the overlap check that needs the store.
func (s *allocationService) check(ctx context.Context, tenantID string, dto *request.AllocationRequest) (*checked, error) {
	if errs := utils.ValidateStruct(dto); len(errs) > 0 {
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	req, err := s.toRequest(dto)
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.Participant.FindByIDs(ctx, tenantID, req.ParticipantIDs)
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}

	var units allocation.Units
	switch req.Type {
	case entity.AccommodationVendor:
		if req.VendorID != nil {
			units.Vendor, err = s.repo.Vendor.FindByID(ctx, tenantID, *req.VendorID)
			if err != nil {
				return nil, fmt.Errorf("load vendor: %w", err)
			}
			if units.Vendor == nil {
				return nil, fmt.Errorf("%w: vendor accommodation %s", ErrNotFound, *req.VendorID)
			}
		}
	case entity.AccommodationGuesthouse:
		if len(req.RoomIDs) == 0 {
			break
		}
		units.Rooms, err = s.repo.Room.FindByIDs(ctx, tenantID, req.RoomIDs)
		if err != nil {
			return nil, fmt.Errorf("load rooms: %w", err)
		}
		if missing := missingRooms(req.RoomIDs, units.Rooms); len(missing) > 0 {
			return nil, fmt.Errorf("%w: rooms %v", ErrNotFound, missing)
		}
	}

	result := s.validator.Validate(req, participants, units)

	if req.CheckOutDate.After(req.CheckInDate) && len(req.ParticipantIDs) > 0 {
		overlapping, err := s.repo.Allocation.FindOverlapping(ctx, tenantID, req.ParticipantIDs, req.CheckInDate, req.CheckOutDate)
		if err != nil {
			return nil, fmt.Errorf("check existing allocations: %w", err)
		}
		for _, id := range alreadyAllocated(req.ParticipantIDs, overlapping) {
			result.Add(allocation.KindAlreadyAllocated, id.String(),
				fmt.Sprintf("participant %s already has accommodation for these dates", id))
		}
	}

	return &checked{req: req, participants: participants, units: units, result: result}, nil
}

func (s *allocationService) toRequest(dto *request.AllocationRequest) (allocation.Request, error) {
	var req allocation.Request
	var err error

	if req.EventID, err = parseID("event_id", dto.EventID); err != nil {
		return req, err
	}
	if req.ParticipantIDs, err = parseIDs("participant_ids", dto.ParticipantIDs); err != nil {
		return req, err
	}
	if req.RoomIDs, err = parseIDs("room_ids", dto.RoomIDs); err != nil {
		return req, err
	}
	if dto.VendorAccommodationID != nil && *dto.VendorAccommodationID != "" {
		id, err := parseID("vendor_accommodation_id", *dto.VendorAccommodationID)
		if err != nil {
			return req, err
		}
		req.VendorID = &id
	}
	if dto.RoomType != nil && *dto.RoomType != "" {
		rt := entity.RoomType(*dto.RoomType)
		req.RoomType = &rt
	}

	if req.CheckInDate, err = time.ParseInLocation(request.DateLayout, dto.CheckInDate, s.loc); err != nil {
		return req, fmt.Errorf("%w: check_in_date %q", ErrInvalidInput, dto.CheckInDate)
	}
	if req.CheckOutDate, err = time.ParseInLocation(request.DateLayout, dto.CheckOutDate, s.loc); err != nil {
		return req, fmt.Errorf("%w: check_out_date %q", ErrInvalidInput, dto.CheckOutDate)
	}

	req.Type = entity.AccommodationType(dto.AccommodationType)
	return req, nil
}

func missingRooms(ids []uuid.UUID, rooms []entity.Room) []uuid.UUID {
	found := make(map[uuid.UUID]struct{}, len(rooms))
	for _, r := range rooms {
		found[r.ID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func alreadyAllocated(ids []uuid.UUID, overlapping []entity.Allocation) []uuid.UUID {
	held := make(map[uuid.UUID]struct{})
	for _, a := range overlapping {
		for _, id := range a.ParticipantIDs {
			held[id] = struct{}{}
		}
	}
	var out []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := held[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (s *allocationService) List(ctx context.Context, tenantID, eventID string) ([]response.AllocationResponse, error) {
	allocs, err := s.listByEvent(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}

	active := allocation.FilterActive(allocs)
	result := make([]response.AllocationResponse, 0, len(active))
	for _, a := range active {
		result = append(result, response.AllocationToResponse(a))
	}
	return result, nil
}

func (s *allocationService) Summary(ctx context.Context, tenantID, eventID string) (*response.SummaryResponse, error) {
	allocs, err := s.listByEvent(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	return &response.SummaryResponse{
		EventID: eventID,
		Summary: allocation.Summarize(allocs),
	}, nil
}

func (s *allocationService) listByEvent(ctx context.Context, tenantID, eventID string) ([]entity.Allocation, error) {
	id, err := parseID("event_id", eventID)
	if err != nil {
		return nil, err
	}
	allocs, err := s.repo.Allocation.ListByEvent(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	return allocs, nil
}

func (s *allocationService) CheckIn(ctx context.Context, tenantID, allocationID string) (*response.AllocationResponse, error) {
	a, err := s.find(ctx, tenantID, allocationID)
	if err != nil {
		return nil, err
	}

	checkedIn, err := allocation.CheckIn(*a, s.now())
	if err != nil {
		return nil, err
	}

	n, err := s.repo.Allocation.CheckIn(ctx, tenantID, []uuid.UUID{a.ID}, checkedIn.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("check in allocation: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: allocation %s", ErrConcurrentUpdate, a.ID)
	}

	resp := response.AllocationToResponse(checkedIn)
	return &resp, nil
}

func (s *allocationService) BulkCheckIn(ctx context.Context, tenantID string, req *request.BulkCheckInRequest) (*response.BulkCheckInResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	resp := &response.BulkCheckInResponse{Results: make([]response.BulkCheckInResult, 0, len(req.AllocationIDs))}
	for _, id := range req.AllocationIDs {
		_, err := s.CheckIn(ctx, tenantID, id)
		switch {
		case err == nil:
			resp.CheckedIn++
			resp.Results = append(resp.Results, response.BulkCheckInResult{ID: id, OK: true})
		case errors.Is(err, ErrNotFound), errors.Is(err, allocation.ErrAllocationState),
			errors.Is(err, ErrConcurrentUpdate), errors.Is(err, ErrInvalidInput):
			resp.Failed++
			resp.Results = append(resp.Results, response.BulkCheckInResult{ID: id, Reason: err.Error()})
		default:
			return nil, err
		}
	}
	return resp, nil
}

func (s *allocationService) Delete(ctx context.Context, tenantID, allocationID string) error {
	a, err := s.find(ctx, tenantID, allocationID)
	if err != nil {
		return err
	}

	cancelled, release, err := allocation.Cancel(*a, s.now())
	if err != nil {
		return err
	}

	if err := s.repo.Allocation.Cancel(ctx, cancelled, release); err != nil {
		return fmt.Errorf("cancel allocation: %w", err)
	}

	s.log.Info("Allocation cancelled",
		zap.String("tenant_id", tenantID),
		zap.String("allocation_id", a.ID.String()),
		zap.Int("released", -release.Added),
	)
	return nil
}

func (s *allocationService) find(ctx context.Context, tenantID, allocationID string) (*entity.Allocation, error) {
	id, err := parseID("allocation_id", allocationID)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.Allocation.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("find allocation: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: allocation %s", ErrNotFound, allocationID)
	}
	return a, nil
}
