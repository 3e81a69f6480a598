package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-logistics/internal/data/entity"
	"event-logistics/internal/data/repository"
	"event-logistics/internal/dto/request"
	"event-logistics/internal/dto/response"
	"event-logistics/internal/engine/transport"
	"event-logistics/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransportService interface {
	List(ctx context.Context, tenantID string, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.TransportBookingResponse], error)
	Get(ctx context.Context, tenantID, bookingID string) (*response.TransportBookingDetailResponse, error)
	NextStatuses(ctx context.Context, tenantID, bookingID string) (*response.NextStatusesResponse, error)
	Create(ctx context.Context, tenantID, actor string, req *request.CreateTransportBookingRequest) (*response.TransportBookingResponse, error)
	SuggestPooling(ctx context.Context, tenantID string, req *request.SuggestPoolingRequest) (*response.PoolingSuggestionResponse, error)
	CheckPackages(ctx context.Context, tenantID string, req *request.CheckPackagesRequest) (*response.CheckPackagesResponse, error)
	UpdateStatus(ctx context.Context, tenantID, actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.TransportBookingResponse, error)
	Delete(ctx context.Context, tenantID, bookingID string) error
}

type transportService struct {
	repo   *repository.Repository
	window time.Duration
	office string
	now    clock
	newID  func() uuid.UUID
	log    *zap.Logger
}

func NewTransportService(repo *repository.Repository, config *utils.Config, log *zap.Logger) TransportService {
	return newTransportService(repo, config.Logistics, time.Now, log)
}

func newTransportService(repo *repository.Repository, cfg utils.LogisticsConfig, now clock, log *zap.Logger) *transportService {
	window := cfg.PoolingWindow
	if window <= 0 {
		window = transport.DefaultPoolingWindow
	}
	office := cfg.WelcomePackageOffice
	if office == "" {
		office = transport.DefaultWelcomePackageOffice
	}
	return &transportService{
		repo:   repo,
		window: window,
		office: office,
		now:    now,
		newID:  uuid.New,
		log:    log.With(zap.String("service", "transport")),
	}
}

func (s *transportService) List(ctx context.Context, tenantID string, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.TransportBookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	filter := repository.BookingFilter{
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}
	if req.Status != "" {
		st := entity.BookingStatus(req.Status)
		filter.Status = &st
	}
	if req.BookingType != "" {
		bt := entity.BookingType(req.BookingType)
		filter.BookingType = &bt
	}

	bookings, total, err := s.repo.TransportBooking.List(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("list transport bookings: %w", err)
	}

	data := make([]response.TransportBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, response.TransportBookingToResponse(b))
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *transportService) Get(ctx context.Context, tenantID, bookingID string) (*response.TransportBookingDetailResponse, error) {
	b, err := s.find(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.TransportBooking.History(ctx, tenantID, b.ID)
	if err != nil {
		return nil, fmt.Errorf("load status history: %w", err)
	}

	detail := &response.TransportBookingDetailResponse{
		TransportBookingResponse: response.TransportBookingToResponse(*b),
		NextStatuses:             transport.NextStates(b.Status),
		History:                  make([]response.StatusUpdateResponse, 0, len(history)),
	}
	for _, h := range history {
		detail.History = append(detail.History, response.StatusUpdateToResponse(h))
	}
	return detail, nil
}

func (s *transportService) NextStatuses(ctx context.Context, tenantID, bookingID string) (*response.NextStatusesResponse, error) {
	b, err := s.find(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}
	return &response.NextStatusesResponse{
		Current:      b.Status,
		NextStatuses: transport.NextStates(b.Status),
	}, nil
}

func (s *transportService) Create(ctx context.Context, tenantID, actor string, req *request.CreateTransportBookingRequest) (*response.TransportBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	draft, err := s.toBooking(tenantID, actor, req)
	if err != nil {
		return nil, err
	}
	poolWith, err := parseIDs("pool_with_booking_ids", req.PoolWithBookingIDs)
	if err != nil {
		return nil, err
	}

	uncollected := false
	if len(draft.ParticipantIDs) > 0 {
		pkgs, err := s.repo.WelcomePackage.FindUncollected(ctx, tenantID, draft.ParticipantIDs)
		if err != nil {
			return nil, fmt.Errorf("check welcome packages: %w", err)
		}
		uncollected = len(pkgs) > 0
	}

	b, err := transport.Prepare(draft, uncollected, s.office)
	if err != nil {
		return nil, err
	}

	if len(poolWith) > 0 {
		targets, err := s.repo.TransportBooking.FindByIDs(ctx, tenantID, poolWith)
		if err != nil {
			return nil, fmt.Errorf("load pool targets: %w", err)
		}
		// Pool on the pickup the operator entered, not the office stop
		// prepended for a welcome package.
		c := transport.CandidateOf(b)
		c.PickupLocation = strings.TrimSpace(draft.PickupLocations[0])
		if err := transport.CheckPoolTargets(c, poolWith, targets, s.window); err != nil {
			return nil, err
		}
		b.PoolGroupID = poolGroupOf(targets, poolWith, s.newID)
	}

	if err := s.repo.TransportBooking.Create(ctx, &b, poolWith); err != nil {
		return nil, fmt.Errorf("create transport booking: %w", err)
	}

	s.log.Info("Transport booking created",
		zap.String("tenant_id", tenantID),
		zap.String("booking_id", b.ID.String()),
		zap.String("booking_type", string(b.BookingType)),
		zap.Bool("welcome_package", b.HasWelcomePackage),
		zap.Int("pooled_with", len(poolWith)),
	)

	resp := response.TransportBookingToResponse(b)
	return &resp, nil
}

// poolGroupOf reuses the group of the first target that already has one so
// merging into a pooled ride does not split it.
func poolGroupOf(targets []entity.TransportBooking, order []uuid.UUID, newID func() uuid.UUID) *uuid.UUID {
	byID := make(map[uuid.UUID]entity.TransportBooking, len(targets))
	for _, t := range targets {
		byID[t.ID] = t
	}
	for _, id := range order {
		if t, ok := byID[id]; ok && t.PoolGroupID != nil {
			g := *t.PoolGroupID
			return &g
		}
	}
	g := newID()
	return &g
}

func (s *transportService) toBooking(tenantID, actor string, req *request.CreateTransportBookingRequest) (entity.TransportBooking, error) {
	now := s.now()
	b := entity.TransportBooking{
		Base: entity.Base{
			ID:        s.newID(),
			TenantID:  tenantID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingType:         entity.BookingType(req.BookingType),
		PickupLocations:     req.PickupLocations,
		Destination:         req.Destination,
		ArrivalTime:         req.ArrivalTime,
		FlightNumber:        req.FlightNumber,
		VendorType:          entity.VendorType(req.VendorType),
		VendorName:          req.VendorName,
		DriverName:          req.DriverName,
		DriverPhone:         req.DriverPhone,
		VehicleDetails:      req.VehicleDetails,
		SpecialInstructions: req.SpecialInstructions,
		CreatedBy:           actor,
	}
	if req.ScheduledTime != nil {
		b.ScheduledTime = *req.ScheduledTime
	}

	if req.EventID != nil && *req.EventID != "" {
		id, err := parseID("event_id", *req.EventID)
		if err != nil {
			return b, err
		}
		b.EventID = &id
	}

	ids, err := parseIDs("participant_ids", req.ParticipantIDs)
	if err != nil {
		return b, err
	}
	b.ParticipantIDs = ids
	return b, nil
}

func (s *transportService) SuggestPooling(ctx context.Context, tenantID string, req *request.SuggestPoolingRequest) (*response.PoolingSuggestionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	window := s.window
	if req.TimeWindowMinutes > 0 {
		window = time.Duration(req.TimeWindowMinutes) * time.Minute
	}

	c := transport.Candidate{
		PickupLocation: strings.TrimSpace(req.PickupLocation),
		ScheduledTime:  req.ScheduledTime,
		BookingType:    entity.BookingType(req.BookingType),
	}

	existing, err := s.repo.TransportBooking.FindPoolCandidates(ctx, tenantID, c.BookingType,
		c.ScheduledTime.Add(-window), c.ScheduledTime.Add(window))
	if err != nil {
		return nil, fmt.Errorf("find pool candidates: %w", err)
	}

	suggestion := transport.SuggestPooling(c, existing, window)
	resp := &response.PoolingSuggestionResponse{ExistingBookings: []response.TransportBookingResponse{}}
	if suggestion == nil {
		return resp, nil
	}
	resp.CanPool = true
	for _, b := range suggestion.Bookings {
		resp.ExistingBookings = append(resp.ExistingBookings, response.TransportBookingToResponse(b))
	}
	return resp, nil
}

func (s *transportService) CheckPackages(ctx context.Context, tenantID string, req *request.CheckPackagesRequest) (*response.CheckPackagesResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	ids, err := parseIDs("participant_ids", req.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	pkgs, err := s.repo.WelcomePackage.FindUncollected(ctx, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("check welcome packages: %w", err)
	}
	waiting := make(map[uuid.UUID]struct{}, len(pkgs))
	for _, p := range pkgs {
		waiting[p.ParticipantID] = struct{}{}
	}

	resp := &response.CheckPackagesResponse{
		OfficeLocation: s.office,
		Participants:   make([]response.PackageStatus, 0, len(ids)),
	}
	for _, id := range ids {
		_, ok := waiting[id]
		resp.AnyUncollected = resp.AnyUncollected || ok
		resp.Participants = append(resp.Participants, response.PackageStatus{
			ParticipantID:  id.String(),
			HasUncollected: ok,
		})
	}
	return resp, nil
}

func (s *transportService) UpdateStatus(ctx context.Context, tenantID, actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.TransportBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}
	target := entity.BookingStatus(req.Status)
	if !transport.ValidStatus(target) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	b, err := s.find(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	updated, update, err := transport.Transition(*b, target, transport.TransitionMeta{
		Location: req.Location,
		Notes:    req.Notes,
		Actor:    actor,
		At:       s.now(),
		NewID:    s.newID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.TransportBooking.UpdateStatus(ctx, &updated, b.Status, update); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.log.Info("Transport booking status changed",
		zap.String("tenant_id", tenantID),
		zap.String("booking_id", b.ID.String()),
		zap.String("from", string(b.Status)),
		zap.String("to", string(target)),
	)

	resp := response.TransportBookingToResponse(updated)
	return &resp, nil
}

func (s *transportService) Delete(ctx context.Context, tenantID, bookingID string) error {
	b, err := s.find(ctx, tenantID, bookingID)
	if err != nil {
		return err
	}
	if err := transport.CanDelete(*b); err != nil {
		return err
	}
	if err := s.repo.TransportBooking.DeletePending(ctx, tenantID, b.ID); err != nil {
		return fmt.Errorf("delete transport booking: %w", err)
	}

	s.log.Info("Transport booking deleted",
		zap.String("tenant_id", tenantID),
		zap.String("booking_id", b.ID.String()),
	)
	return nil
}

func (s *transportService) find(ctx context.Context, tenantID, bookingID string) (*entity.TransportBooking, error) {
	id, err := parseID("booking_id", bookingID)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.TransportBooking.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("find transport booking: %w", err)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: transport booking %s", ErrNotFound, bookingID)
	}
	return b, nil
}
