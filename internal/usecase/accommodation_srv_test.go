package usecase

import (
	"context"
	"testing"
	"time"

	"event-logistics/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAccommodationService_RoomOccupants(t *testing.T) {
	s := newStore()
	zoe := s.addParticipant("Zoe", entity.GenderFemale)
	ada := s.addParticipant("Ada", entity.GenderFemale)
	r := s.addRoom("401", 3, 0)
	allocs := newAllocationService(s.repository(), time.UTC, fixedClock, zap.NewNop())
	_, err := allocs.Create(context.Background(), tenant, guesthouseReq([]entity.Room{r}, zoe, ada))
	require.NoError(t, err)

	svc := NewAccommodationService(s.repository(), zap.NewNop())
	got, err := svc.RoomOccupants(context.Background(), tenant, r.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 2, got.Room.CurrentOccupants)
	assert.Equal(t, 1, got.Room.Remaining)
	assert.Equal(t, []string{"female"}, got.Room.OccupantGenders)
	require.Len(t, got.Occupants, 2)
	assert.Equal(t, "Ada", got.Occupants[0].Name)
	assert.Equal(t, "Zoe", got.Occupants[1].Name)
	assert.Len(t, got.Allocations, 1)

	_, err = svc.RoomOccupants(context.Background(), tenant, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccommodationService_ListRooms(t *testing.T) {
	s := newStore()
	a := s.addRoom("1", 2, 0)
	s.addRoom("2", 2, 1, entity.GenderMale)
	svc := NewAccommodationService(s.repository(), zap.NewNop())

	all, err := svc.ListRooms(context.Background(), tenant, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := svc.ListRooms(context.Background(), tenant, a.GuesthouseID.String())
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, a.ID.String(), one[0].ID)

	_, err = svc.ListRooms(context.Background(), tenant, "guesthouse-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParticipantService_ListByEvent(t *testing.T) {
	s := newStore()
	s.addParticipant("Bo", entity.GenderMale)
	s.addParticipant("Al", entity.GenderUnknown)
	svc := NewParticipantService(s.repository().Participant, zap.NewNop())

	got, err := svc.ListByEvent(context.Background(), tenant, eventID.String())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Al", got[0].Name)
	assert.Equal(t, entity.GenderUnknown, got[0].Gender)

	_, err = svc.ListByEvent(context.Background(), tenant, "bad")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
