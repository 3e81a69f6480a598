package allocation

import (
	"errors"
	"fmt"
	"time"

	"event-logistics/internal/data/entity"
)

var ErrAllocationState = errors.New("allocation state does not allow this operation")

// CheckIn moves an active allocation to checked_in.
func CheckIn(a entity.Allocation, now time.Time) (entity.Allocation, error) {
	if a.Status != entity.AllocationStatusActive {
		return a, fmt.Errorf("%w: cannot check in an allocation that is %s", ErrAllocationState, a.Status)
	}
	a.Status = entity.AllocationStatusCheckedIn
	a.UpdatedAt = now
	return a, nil
}

// Cancel tombstones an allocation and returns the occupancy to release.
func Cancel(a entity.Allocation, now time.Time) (entity.Allocation, entity.OccupancyDelta, error) {
	if a.Status == entity.AllocationStatusCancelled {
		return a, entity.OccupancyDelta{}, fmt.Errorf("%w: allocation is already cancelled", ErrAllocationState)
	}
	a.Status = entity.AllocationStatusCancelled
	a.UpdatedAt = now
	return a, entity.OccupancyDelta{
		UnitID: a.UnitID(),
		Type:   a.AccommodationType,
		Added:  -len(a.ParticipantIDs),
	}, nil
}

// Overlaps reports whether a live allocation intersects [checkIn, checkOut).
func Overlaps(a entity.Allocation, checkIn, checkOut time.Time) bool {
	if a.Status == entity.AllocationStatusCancelled {
		return false
	}
	return a.CheckInDate.Before(checkOut) && checkIn.Before(a.CheckOutDate)
}

// FilterActive drops cancelled tombstones.
func FilterActive(allocs []entity.Allocation) []entity.Allocation {
	out := make([]entity.Allocation, 0, len(allocs))
	for _, a := range allocs {
		if a.Status != entity.AllocationStatusCancelled {
			out = append(out, a)
		}
	}
	return out
}

type Summary struct {
	Allocations int `json:"allocations"`
	Guests      int `json:"guests"`
	CheckedIn   int `json:"checked_in"`
	Vendor      int `json:"vendor_guests"`
	Guesthouse  int `json:"guesthouse_guests"`
}

// Summarize totals allocations, ignoring cancelled ones.
func Summarize(allocs []entity.Allocation) Summary {
	var s Summary
	for _, a := range FilterActive(allocs) {
		n := len(a.ParticipantIDs)
		s.Allocations++
		s.Guests += n
		if a.Status == entity.AllocationStatusCheckedIn {
			s.CheckedIn += n
		}
		switch a.AccommodationType {
		case entity.AccommodationVendor:
			s.Vendor += n
		case entity.AccommodationGuesthouse:
			s.Guesthouse += n
		}
	}
	return s
}
