package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"event-logistics/internal/data/entity"
	"event-logistics/internal/dto/request"
	"event-logistics/internal/engine/transport"
	"event-logistics/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTransportService(s *store) *transportService {
	return newTransportService(s.repository(), utils.LogisticsConfig{
		PoolingWindow:        60 * time.Minute,
		WelcomePackageOffice: "MSF Office",
	}, fixedClock, zap.NewNop())
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 15, hour, minute, 0, 0, time.UTC)
}

func transferReq(pickup string, when time.Time, participants ...uuid.UUID) *request.CreateTransportBookingRequest {
	event := eventID.String()
	req := &request.CreateTransportBookingRequest{
		BookingType:     "event_transfer",
		EventID:         &event,
		PickupLocations: []string{pickup},
		Destination:     "Conference Centre",
		ScheduledTime:   &when,
	}
	for _, id := range participants {
		req.ParticipantIDs = append(req.ParticipantIDs, id.String())
	}
	return req
}

func transportKinds(t *testing.T, err error) []transport.ErrorKind {
	t.Helper()
	var verr *transport.ValidationErrors
	require.True(t, errors.As(err, &verr), "expected validation errors, got %v", err)
	kinds := make([]transport.ErrorKind, len(verr.Errors))
	for i, e := range verr.Errors {
		kinds[i] = e.Kind
	}
	return kinds
}

func TestTransportService_CreateAirportPickup(t *testing.T) {
	s := newStore()
	svc := newTestTransportService(s)
	arrival := at(14, 20)
	flight := "KQ101"

	got, err := svc.Create(context.Background(), tenant, "ops@example.org", &request.CreateTransportBookingRequest{
		BookingType:     "airport_pickup",
		ParticipantIDs:  []string{uuid.NewString()},
		PickupLocations: []string{" Airport T1 "},
		Destination:     "Harbour Hotel",
		ArrivalTime:     &arrival,
		FlightNumber:    &flight,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, got.Status)
	assert.True(t, got.ScheduledTime.Equal(arrival))
	assert.Equal(t, []string{"Airport T1"}, got.PickupLocations)
	assert.Equal(t, entity.VendorTypeAbsolute, got.VendorType)
	assert.Equal(t, "ops@example.org", got.CreatedBy)
	assert.Nil(t, got.PoolGroupID)
	assert.Len(t, s.bookings, 1)
}

func TestTransportService_CreateRejectsDraft(t *testing.T) {
	s := newStore()
	svc := newTestTransportService(s)

	_, err := svc.Create(context.Background(), tenant, "", &request.CreateTransportBookingRequest{
		BookingType:    "airport_pickup",
		ParticipantIDs: []string{uuid.NewString(), uuid.NewString()},
		Destination:    "Harbour Hotel",
	})
	assert.ElementsMatch(t, []transport.ErrorKind{
		transport.KindAirportSingle,
		transport.KindMissingArrivalTime,
		transport.KindNoPickupLocations,
	}, transportKinds(t, err))
	assert.Empty(t, s.bookings)
}

func TestTransportService_CreateWithWelcomePackage(t *testing.T) {
	s := newStore()
	p := uuid.New()
	s.packages[p] = false
	svc := newTestTransportService(s)

	got, err := svc.Create(context.Background(), tenant, "", transferReq("Harbour Hotel", at(8, 0), p))
	require.NoError(t, err)
	assert.True(t, got.HasWelcomePackage)
	assert.Equal(t, []string{"MSF Office", "Harbour Hotel"}, got.PickupLocations)
	require.NotNil(t, got.PackagePickupLocation)
	assert.Equal(t, "MSF Office", *got.PackagePickupLocation)
}

func TestTransportService_CreatePooled(t *testing.T) {
	s := newStore()
	group := uuid.New()
	pooled := s.addBooking(entity.TransportBooking{
		BookingType:     entity.BookingTypeEventTransfer,
		Status:          entity.BookingStatusConfirmed,
		PickupLocations: []string{"Harbour Hotel"},
		ScheduledTime:   at(8, 15),
		PoolGroupID:     &group,
	})
	loose := s.addBooking(entity.TransportBooking{
		BookingType:     entity.BookingTypeEventTransfer,
		Status:          entity.BookingStatusPending,
		PickupLocations: []string{"Harbour Hotel"},
		ScheduledTime:   at(7, 40),
	})
	svc := newTestTransportService(s)

	req := transferReq("Harbour Hotel", at(8, 0), uuid.New())
	req.PoolWithBookingIDs = []string{loose.ID.String(), pooled.ID.String()}
	got, err := svc.Create(context.Background(), tenant, "", req)
	require.NoError(t, err)

	require.NotNil(t, got.PoolGroupID)
	assert.Equal(t, group.String(), *got.PoolGroupID)
	assert.Equal(t, group, *s.bookings[loose.ID].PoolGroupID)
	assert.Equal(t, group, *s.bookings[pooled.ID].PoolGroupID)
}

func TestTransportService_CreatePooledWithWelcomePackage(t *testing.T) {
	s := newStore()
	existing := s.addBooking(entity.TransportBooking{
		BookingType:     entity.BookingTypeAirportPickup,
		Status:          entity.BookingStatusPending,
		PickupLocations: []string{"Airport"},
		ScheduledTime:   at(10, 0),
	})
	p := uuid.New()
	s.packages[p] = false
	svc := newTestTransportService(s)
	arrival := at(10, 20)

	suggestion, err := svc.SuggestPooling(context.Background(), tenant, &request.SuggestPoolingRequest{
		BookingType:    "airport_pickup",
		PickupLocation: " Airport ",
		ScheduledTime:  arrival,
	})
	require.NoError(t, err)
	require.True(t, suggestion.CanPool)
	require.Len(t, suggestion.ExistingBookings, 1)

	got, err := svc.Create(context.Background(), tenant, "", &request.CreateTransportBookingRequest{
		BookingType:        "airport_pickup",
		ParticipantIDs:     []string{p.String()},
		PickupLocations:    []string{"Airport"},
		Destination:        "Harbour Hotel",
		ArrivalTime:        &arrival,
		PoolWithBookingIDs: []string{suggestion.ExistingBookings[0].ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"MSF Office", "Airport"}, got.PickupLocations)
	assert.True(t, got.HasWelcomePackage)
	require.NotNil(t, got.PoolGroupID)
	require.NotNil(t, s.bookings[existing.ID].PoolGroupID)
	assert.Equal(t, *got.PoolGroupID, s.bookings[existing.ID].PoolGroupID.String())
}

func TestTransportService_CreatePoolTargetInvalid(t *testing.T) {
	s := newStore()
	far := s.addBooking(entity.TransportBooking{
		BookingType:     entity.BookingTypeEventTransfer,
		Status:          entity.BookingStatusPending,
		PickupLocations: []string{"Harbour Hotel"},
		ScheduledTime:   at(11, 0),
	})
	svc := newTestTransportService(s)

	req := transferReq("Harbour Hotel", at(8, 0), uuid.New())
	req.PoolWithBookingIDs = []string{far.ID.String(), uuid.NewString()}
	_, err := svc.Create(context.Background(), tenant, "", req)
	assert.Equal(t, []transport.ErrorKind{transport.KindPoolTargetInvalid, transport.KindPoolTargetInvalid}, transportKinds(t, err))
	assert.Len(t, s.bookings, 1)
	assert.Nil(t, s.bookings[far.ID].PoolGroupID)
}

func TestTransportService_SuggestPooling(t *testing.T) {
	s := newStore()
	existing := s.addBooking(entity.TransportBooking{
		BookingType:     entity.BookingTypeAirportPickup,
		Status:          entity.BookingStatusConfirmed,
		PickupLocations: []string{"Airport T1"},
		ScheduledTime:   at(10, 0),
	})
	svc := newTestTransportService(s)

	got, err := svc.SuggestPooling(context.Background(), tenant, &request.SuggestPoolingRequest{
		BookingType:    "airport_pickup",
		PickupLocation: "Airport T1",
		ScheduledTime:  at(10, 45),
	})
	require.NoError(t, err)
	assert.True(t, got.CanPool)
	require.Len(t, got.ExistingBookings, 1)
	assert.Equal(t, existing.ID.String(), got.ExistingBookings[0].ID)

	got, err = svc.SuggestPooling(context.Background(), tenant, &request.SuggestPoolingRequest{
		BookingType:       "airport_pickup",
		PickupLocation:    "Airport T1",
		ScheduledTime:     at(10, 45),
		TimeWindowMinutes: 30,
	})
	require.NoError(t, err)
	assert.False(t, got.CanPool)
	assert.Empty(t, got.ExistingBookings)
}

func TestTransportService_StatusFlow(t *testing.T) {
	s := newStore()
	b := s.addBooking(entity.TransportBooking{
		BookingType:     entity.BookingTypeOfficeVisit,
		Status:          entity.BookingStatusPending,
		PickupLocations: []string{"Harbour Hotel"},
		ScheduledTime:   at(9, 0),
	})
	svc := newTestTransportService(s)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, tenant, "driver@example.org", b.ID.String(), &request.UpdateBookingStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, transport.ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, tenant, "", b.ID.String(), &request.UpdateBookingStatusRequest{Status: "teleported"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	office := "MSF Office"
	got, err := svc.UpdateStatus(ctx, tenant, "driver@example.org", b.ID.String(), &request.UpdateBookingStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, got.Status)

	got, err = svc.UpdateStatus(ctx, tenant, "driver@example.org", b.ID.String(), &request.UpdateBookingStatusRequest{
		Status:   "package_collected",
		Location: &office,
	})
	require.NoError(t, err)
	assert.True(t, got.PackageCollected)

	detail, err := svc.Get(ctx, tenant, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPackageCollected, detail.Status)
	assert.Equal(t, []entity.BookingStatus{entity.BookingStatusVisitorPickedUp, entity.BookingStatusCancelled}, detail.NextStatuses)
	require.Len(t, detail.History, 2)
	assert.Equal(t, entity.BookingStatusPending, detail.History[0].FromStatus)
	assert.Equal(t, &office, detail.History[1].Location)
	assert.Equal(t, "driver@example.org", detail.History[1].CreatedBy)

	next, err := svc.NextStatuses(ctx, tenant, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPackageCollected, next.Current)

	err = svc.Delete(ctx, tenant, b.ID.String())
	assert.ErrorIs(t, err, transport.ErrCannotDeleteConfirmed)
	assert.Contains(t, s.bookings, b.ID)
}

func TestTransportService_DeletePending(t *testing.T) {
	s := newStore()
	b := s.addBooking(entity.TransportBooking{BookingType: entity.BookingTypeCustom, Status: entity.BookingStatusPending})
	svc := newTestTransportService(s)

	require.NoError(t, svc.Delete(context.Background(), tenant, b.ID.String()))
	assert.NotContains(t, s.bookings, b.ID)

	err := svc.Delete(context.Background(), tenant, b.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransportService_List(t *testing.T) {
	s := newStore()
	for i := 0; i < 3; i++ {
		s.addBooking(entity.TransportBooking{
			BookingType:   entity.BookingTypeEventTransfer,
			Status:        entity.BookingStatusPending,
			ScheduledTime: at(8+i, 0),
		})
	}
	s.addBooking(entity.TransportBooking{BookingType: entity.BookingTypeEventTransfer, Status: entity.BookingStatusCancelled})
	svc := newTestTransportService(s)

	got, err := svc.List(context.Background(), tenant, &request.ListBookingsRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 2},
		Status:           "pending",
	})
	require.NoError(t, err)
	assert.Len(t, got.Data, 2)
	assert.Equal(t, int64(3), got.Pagination.Total)
	assert.Equal(t, 2, got.Pagination.TotalPages)
}

func TestTransportService_CheckPackages(t *testing.T) {
	s := newStore()
	waiting, collected, none := uuid.New(), uuid.New(), uuid.New()
	s.packages[waiting] = false
	s.packages[collected] = true
	svc := newTestTransportService(s)

	got, err := svc.CheckPackages(context.Background(), tenant, &request.CheckPackagesRequest{
		ParticipantIDs: []string{waiting.String(), collected.String(), none.String()},
	})
	require.NoError(t, err)
	assert.True(t, got.AnyUncollected)
	assert.Equal(t, "MSF Office", got.OfficeLocation)
	require.Len(t, got.Participants, 3)
	assert.True(t, got.Participants[0].HasUncollected)
	assert.False(t, got.Participants[1].HasUncollected)
	assert.False(t, got.Participants[2].HasUncollected)
}
