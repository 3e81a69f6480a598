package response

import (
	"time"

	"event-logistics/internal/data/entity"
)

type TransportBookingResponse struct {
	ID                    string               `json:"id"`
	BookingType           entity.BookingType   `json:"booking_type"`
	Status                entity.BookingStatus `json:"status"`
	EventID               *string              `json:"event_id,omitempty"`
	ParticipantIDs        []string             `json:"participant_ids"`
	PickupLocations       []string             `json:"pickup_locations"`
	Destination           string               `json:"destination"`
	ScheduledTime         time.Time            `json:"scheduled_time"`
	ArrivalTime           *time.Time           `json:"arrival_time,omitempty"`
	FlightNumber          *string              `json:"flight_number,omitempty"`
	HasWelcomePackage     bool                 `json:"has_welcome_package"`
	PackagePickupLocation *string              `json:"package_pickup_location,omitempty"`
	PackageCollected      bool                 `json:"package_collected"`
	VendorType            entity.VendorType    `json:"vendor_type"`
	VendorName            *string              `json:"vendor_name,omitempty"`
	DriverName            *string              `json:"driver_name,omitempty"`
	DriverPhone           *string              `json:"driver_phone,omitempty"`
	VehicleDetails        *string              `json:"vehicle_details,omitempty"`
	SpecialInstructions   *string              `json:"special_instructions,omitempty"`
	PoolGroupID           *string              `json:"pool_group_id,omitempty"`
	CreatedBy             string               `json:"created_by,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

type StatusUpdateResponse struct {
	ID         string               `json:"id"`
	FromStatus entity.BookingStatus `json:"from_status"`
	ToStatus   entity.BookingStatus `json:"to_status"`
	Location   *string              `json:"location,omitempty"`
	Notes      *string              `json:"notes,omitempty"`
	CreatedBy  string               `json:"created_by,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

type TransportBookingDetailResponse struct {
	TransportBookingResponse
	NextStatuses []entity.BookingStatus `json:"next_statuses"`
	History      []StatusUpdateResponse `json:"history"`
}

type NextStatusesResponse struct {
	Current      entity.BookingStatus   `json:"current"`
	NextStatuses []entity.BookingStatus `json:"next_statuses"`
}

type PoolingSuggestionResponse struct {
	CanPool          bool                       `json:"can_pool"`
	ExistingBookings []TransportBookingResponse `json:"existing_bookings"`
}

type PackageStatus struct {
	ParticipantID  string `json:"participant_id"`
	HasUncollected bool   `json:"has_uncollected_package"`
}

type CheckPackagesResponse struct {
	AnyUncollected bool            `json:"any_uncollected"`
	OfficeLocation string          `json:"office_location"`
	Participants   []PackageStatus `json:"participants"`
}

func TransportBookingToResponse(b entity.TransportBooking) TransportBookingResponse {
	ids := make([]string, len(b.ParticipantIDs))
	for i, id := range b.ParticipantIDs {
		ids[i] = id.String()
	}

	resp := TransportBookingResponse{
		ID:                    b.ID.String(),
		BookingType:           b.BookingType,
		Status:                b.Status,
		ParticipantIDs:        ids,
		PickupLocations:       b.PickupLocations,
		Destination:           b.Destination,
		ScheduledTime:         b.ScheduledTime,
		ArrivalTime:           b.ArrivalTime,
		FlightNumber:          b.FlightNumber,
		HasWelcomePackage:     b.HasWelcomePackage,
		PackagePickupLocation: b.PackagePickupLocation,
		PackageCollected:      b.PackageCollected,
		VendorType:            b.VendorType,
		VendorName:            b.VendorName,
		DriverName:            b.DriverName,
		DriverPhone:           b.DriverPhone,
		VehicleDetails:        b.VehicleDetails,
		SpecialInstructions:   b.SpecialInstructions,
		CreatedBy:             b.CreatedBy,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
	if b.EventID != nil {
		s := b.EventID.String()
		resp.EventID = &s
	}
	if b.PoolGroupID != nil {
		s := b.PoolGroupID.String()
		resp.PoolGroupID = &s
	}
	return resp
}

func StatusUpdateToResponse(u entity.StatusUpdate) StatusUpdateResponse {
	return StatusUpdateResponse{
		ID:         u.ID.String(),
		FromStatus: u.FromStatus,
		ToStatus:   u.ToStatus,
		Location:   u.Location,
		Notes:      u.Notes,
		CreatedBy:  u.CreatedBy,
		CreatedAt:  u.CreatedAt,
	}
}
