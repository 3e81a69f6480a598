package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingType string

const (
	BookingTypeAirportPickup BookingType = "airport_pickup"
	BookingTypeEventTransfer BookingType = "event_transfer"
	BookingTypeOfficeVisit   BookingType = "office_visit"
	BookingTypeCustom        BookingType = "custom"
)

type BookingStatus string

const (
	BookingStatusPending          BookingStatus = "pending"
	BookingStatusConfirmed        BookingStatus = "confirmed"
	BookingStatusPackageCollected BookingStatus = "package_collected"
	BookingStatusVisitorPickedUp  BookingStatus = "visitor_picked_up"
	BookingStatusInTransit        BookingStatus = "in_transit"
	BookingStatusCompleted        BookingStatus = "completed"
	BookingStatusCancelled        BookingStatus = "cancelled"
)

type VendorType string

const (
	VendorTypeAbsolute VendorType = "absolute_taxi"
	VendorTypeManual   VendorType = "manual_vendor"
)

type TransportBooking struct {
	Base
	BookingType           BookingType   `db:"booking_type"`
	Status                BookingStatus `db:"status"`
	EventID               *uuid.UUID    `db:"event_id"`
	ParticipantIDs        []uuid.UUID   `db:"participant_ids"`
	PickupLocations       []string      `db:"pickup_locations"`
	Destination           string        `db:"destination"`
	ScheduledTime         time.Time     `db:"scheduled_time"`
	ArrivalTime           *time.Time    `db:"arrival_time"`
	FlightNumber          *string       `db:"flight_number"`
	HasWelcomePackage     bool          `db:"has_welcome_package"`
	PackagePickupLocation *string       `db:"package_pickup_location"`
	PackageCollected      bool          `db:"package_collected"`
	VendorType            VendorType    `db:"vendor_type"`
	VendorName            *string       `db:"vendor_name"`
	DriverName            *string       `db:"driver_name"`
	DriverPhone           *string       `db:"driver_phone"`
	VehicleDetails        *string       `db:"vehicle_details"`
	SpecialInstructions   *string       `db:"special_instructions"`
	PoolGroupID           *uuid.UUID    `db:"pool_group_id"`
	CreatedBy             string        `db:"created_by"`
}

// PrimaryPickup is the anchor stop used for pooling.
func (b *TransportBooking) PrimaryPickup() string {
	if len(b.PickupLocations) == 0 {
		return ""
	}
	return b.PickupLocations[0]
}

// StatusUpdate records the optional metadata that accompanied a transition.
type StatusUpdate struct {
	BaseSimple
	BookingID  uuid.UUID     `db:"booking_id"`
	FromStatus BookingStatus `db:"from_status"`
	ToStatus   BookingStatus `db:"to_status"`
	Location   *string       `db:"location"`
	Notes      *string       `db:"notes"`
	CreatedBy  string        `db:"created_by"`
}

// WelcomePackage is a physical item waiting at the office for a participant.
type WelcomePackage struct {
	ParticipantID uuid.UUID `db:"participant_id"`
	Collected     bool      `db:"collected"`
}
