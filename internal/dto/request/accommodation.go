package request

const DateLayout = "2006-01-02"

// AllocationRequest allocates participants to a vendor or to guesthouse
// rooms. Shape is checked here; the business rules run in the engine so that
// every violation is reported together.
type AllocationRequest struct {
	EventID               string   `json:"event_id" validate:"required,uuid"`
	ParticipantIDs        []string `json:"participant_ids" validate:"dive,uuid"`
	AccommodationType     string   `json:"accommodation_type" validate:"required,oneof=vendor guesthouse"`
	VendorAccommodationID *string  `json:"vendor_accommodation_id,omitempty" validate:"omitempty,uuid"`
	RoomIDs               []string `json:"room_ids,omitempty" validate:"dive,uuid"`
	RoomType              *string  `json:"room_type,omitempty" validate:"omitempty,oneof=single double"`
	CheckInDate           string   `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate          string   `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

type VendorAllocationRequest struct {
	EventID               string   `json:"event_id" validate:"required,uuid"`
	ParticipantIDs        []string `json:"participant_ids" validate:"dive,uuid"`
	VendorAccommodationID *string  `json:"vendor_accommodation_id,omitempty" validate:"omitempty,uuid"`
	RoomType              *string  `json:"room_type,omitempty" validate:"omitempty,oneof=single double"`
	CheckInDate           string   `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate          string   `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

// AsAllocation converts to the general request with the type fixed to vendor.
func (r VendorAllocationRequest) AsAllocation() AllocationRequest {
	return AllocationRequest{
		EventID:               r.EventID,
		ParticipantIDs:        r.ParticipantIDs,
		AccommodationType:     "vendor",
		VendorAccommodationID: r.VendorAccommodationID,
		RoomType:              r.RoomType,
		CheckInDate:           r.CheckInDate,
		CheckOutDate:          r.CheckOutDate,
	}
}

type BulkCheckInRequest struct {
	AllocationIDs []string `json:"allocation_ids" validate:"required,min=1,max=200,dive,uuid"`
}
