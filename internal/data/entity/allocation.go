package entity

import (
	"time"

	"github.com/google/uuid"
)

type AllocationStatus string

const (
	AllocationStatusActive    AllocationStatus = "active"
	AllocationStatusCheckedIn AllocationStatus = "checked_in"
	AllocationStatusCancelled AllocationStatus = "cancelled"
)

// Allocation links participants to one unit for a date range. Deleting an
// allocation only flips it to cancelled.
type Allocation struct {
	Base
	EventID               uuid.UUID         `db:"event_id"`
	ParticipantIDs        []uuid.UUID       `db:"participant_ids"`
	AccommodationType     AccommodationType `db:"accommodation_type"`
	VendorAccommodationID *uuid.UUID        `db:"vendor_accommodation_id"`
	RoomID                *uuid.UUID        `db:"room_id"`
	RoomType              *RoomType         `db:"room_type"`
	CheckInDate           time.Time         `db:"check_in_date"`
	CheckOutDate          time.Time         `db:"check_out_date"`
	Status                AllocationStatus  `db:"status"`
}

// UnitID returns the vendor or room id this allocation occupies.
func (a *Allocation) UnitID() uuid.UUID {
	if a.VendorAccommodationID != nil {
		return *a.VendorAccommodationID
	}
	if a.RoomID != nil {
		return *a.RoomID
	}
	return uuid.Nil
}

// OccupancyDelta is a relative change to one unit's occupancy, applied by the
// store under a capacity guard.
type OccupancyDelta struct {
	UnitID  uuid.UUID
	Type    AccommodationType
	Added   int
	Genders GenderSet
}
