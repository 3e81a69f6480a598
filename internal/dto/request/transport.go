package request

import "time"

type CreateTransportBookingRequest struct {
	BookingType         string     `json:"booking_type" validate:"required,oneof=airport_pickup event_transfer office_visit custom"`
	EventID             *string    `json:"event_id,omitempty" validate:"omitempty,uuid"`
	ParticipantIDs      []string   `json:"participant_ids" validate:"dive,uuid"`
	PickupLocations     []string   `json:"pickup_locations" validate:"max=10"`
	Destination         string     `json:"destination" validate:"required,max=255"`
	ScheduledTime       *time.Time `json:"scheduled_time,omitempty"`
	ArrivalTime         *time.Time `json:"arrival_time,omitempty"`
	FlightNumber        *string    `json:"flight_number,omitempty" validate:"omitempty,max=20"`
	VendorType          string     `json:"vendor_type,omitempty" validate:"omitempty,oneof=absolute_taxi manual_vendor"`
	VendorName          *string    `json:"vendor_name,omitempty" validate:"omitempty,max=255"`
	DriverName          *string    `json:"driver_name,omitempty" validate:"omitempty,max=255"`
	DriverPhone         *string    `json:"driver_phone,omitempty" validate:"omitempty,max=50"`
	VehicleDetails      *string    `json:"vehicle_details,omitempty" validate:"omitempty,max=255"`
	SpecialInstructions *string    `json:"special_instructions,omitempty" validate:"omitempty,max=2000"`
	PoolWithBookingIDs  []string   `json:"pool_with_booking_ids,omitempty" validate:"dive,uuid"`
}

type SuggestPoolingRequest struct {
	BookingType    string    `json:"booking_type" validate:"required,oneof=airport_pickup event_transfer office_visit custom"`
	PickupLocation string    `json:"pickup_location" validate:"required"`
	ScheduledTime  time.Time `json:"scheduled_time" validate:"required"`
	// TimeWindowMinutes overrides the configured window when set.
	TimeWindowMinutes int `json:"time_window_minutes,omitempty" validate:"omitempty,min=1,max=1440"`
}

type CheckPackagesRequest struct {
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,dive,uuid"`
}

type UpdateBookingStatusRequest struct {
	Status   string  `json:"status" validate:"required"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type ListBookingsRequest struct {
	PaginatedRequest
	Status      string `json:"status" validate:"omitempty,oneof=pending confirmed package_collected visitor_picked_up in_transit completed cancelled"`
	BookingType string `json:"booking_type" validate:"omitempty,oneof=airport_pickup event_transfer office_visit custom"`
}
