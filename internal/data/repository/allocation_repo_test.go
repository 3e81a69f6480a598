package repository

import (
	"context"
	"testing"
	"time"

	"event-logistics/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func roomAllocation(roomID uuid.UUID, participants int) entity.Allocation {
	a := entity.Allocation{
		Base:              entity.Base{ID: uuid.New(), TenantID: "tenant-a", UpdatedAt: time.Now()},
		EventID:           uuid.New(),
		AccommodationType: entity.AccommodationGuesthouse,
		RoomID:            &roomID,
		CheckInDate:       time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:      time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
		Status:            entity.AllocationStatusActive,
	}
	for i := 0; i < participants; i++ {
		a.ParticipantIDs = append(a.ParticipantIDs, uuid.New())
	}
	return a
}

func TestAllocationRepository_CreateWithOccupancy(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	alloc := roomAllocation(roomID, 2)
	delta := entity.OccupancyDelta{
		UnitID:  roomID,
		Type:    entity.AccommodationGuesthouse,
		Added:   2,
		Genders: entity.NewGenderSet(entity.GenderFemale),
	}

	t.Run("applies occupancy then inserts", func(t *testing.T) {
		mock := newMock(t)
		repo := NewAllocationRepository(mock, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rooms").
			WithArgs(roomID, "tenant-a", 2, []string{"female"}).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("INSERT INTO allocations").
			WithArgs(anyArgs(13)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.CreateWithOccupancy(ctx, []entity.Allocation{alloc}, []entity.OccupancyDelta{delta}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("full room rolls everything back", func(t *testing.T) {
		mock := newMock(t)
		repo := NewAllocationRepository(mock, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rooms").
			WithArgs(roomID, "tenant-a", 2, []string{"female"}).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		err := repo.CreateWithOccupancy(ctx, []entity.Allocation{alloc}, []entity.OccupancyDelta{delta})
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("room guards the gender rule at write time", func(t *testing.T) {
		mock := newMock(t)
		repo := NewAllocationRepository(mock, zap.NewNop())
		male := roomAllocation(roomID, 1)

		mock.ExpectBegin()
		mock.ExpectExec(`occupant_genders <@ \$4::text\[\]`).
			WithArgs(roomID, "tenant-a", 1, []string{"male"}).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		err := repo.CreateWithOccupancy(ctx, []entity.Allocation{male}, []entity.OccupancyDelta{{
			UnitID:  roomID,
			Type:    entity.AccommodationGuesthouse,
			Added:   1,
			Genders: entity.NewGenderSet(entity.GenderMale),
		}})
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mixed genders never reach a shared room", func(t *testing.T) {
		mock := newMock(t)
		repo := NewAllocationRepository(mock, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec(`cardinality\(\$4::text\[\]\) <= 1`).
			WithArgs(roomID, "tenant-a", 2, []string{"female", "male"}).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		err := repo.CreateWithOccupancy(ctx, []entity.Allocation{alloc}, []entity.OccupancyDelta{{
			UnitID:  roomID,
			Type:    entity.AccommodationGuesthouse,
			Added:   2,
			Genders: entity.NewGenderSet(entity.GenderMale, entity.GenderFemale),
		}})
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("vendor delta", func(t *testing.T) {
		mock := newMock(t)
		repo := NewAllocationRepository(mock, zap.NewNop())
		vendorID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE vendor_accommodations").
			WithArgs(vendorID, "tenant-a", 1).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		err := repo.CreateWithOccupancy(ctx, []entity.Allocation{alloc}, []entity.OccupancyDelta{{
			UnitID: vendorID, Type: entity.AccommodationVendor, Added: 1,
		}})
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAllocationRepository_Cancel(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	alloc := roomAllocation(roomID, 2)
	alloc.Status = entity.AllocationStatusCancelled
	release := entity.OccupancyDelta{UnitID: roomID, Type: entity.AccommodationGuesthouse, Added: -2}

	t.Run("tombstones and releases", func(t *testing.T) {
		mock := newMock(t)
		repo := NewAllocationRepository(mock, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE allocations").
			WithArgs("tenant-a", alloc.ID, alloc.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE rooms").
			WithArgs(roomID, "tenant-a", 2).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Cancel(ctx, alloc, release))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already cancelled elsewhere", func(t *testing.T) {
		mock := newMock(t)
		repo := NewAllocationRepository(mock, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE allocations").
			WithArgs("tenant-a", alloc.ID, alloc.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Cancel(ctx, alloc, release), ErrConcurrentUpdate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAllocationRepository_CheckIn(t *testing.T) {
	mock := newMock(t)
	repo := NewAllocationRepository(mock, zap.NewNop())
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	at := time.Now()

	mock.ExpectExec("UPDATE allocations").
		WithArgs("tenant-a", ids, at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	n, err := repo.CheckIn(context.Background(), "tenant-a", ids, at)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
