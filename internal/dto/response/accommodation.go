package response

import (
	"time"

	"event-logistics/internal/data/entity"
	"event-logistics/internal/engine/allocation"
)

type ParticipantResponse struct {
	ID      string        `json:"id"`
	EventID string        `json:"event_id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Gender  entity.Gender `json:"gender"`
}

type VendorResponse struct {
	ID               string `json:"id"`
	VendorName       string `json:"vendor_name"`
	Location         string `json:"location"`
	Capacity         int    `json:"capacity"`
	CurrentOccupants int    `json:"current_occupants"`
	Remaining        int    `json:"remaining"`
}

type RoomResponse struct {
	ID               string   `json:"id"`
	GuesthouseID     string   `json:"guesthouse_id"`
	RoomNumber       string   `json:"room_number"`
	Capacity         int      `json:"capacity"`
	CurrentOccupants int      `json:"current_occupants"`
	Remaining        int      `json:"remaining"`
	OccupantGenders  []string `json:"occupant_genders"`
}

type RoomOccupantsResponse struct {
	Room        RoomResponse          `json:"room"`
	Occupants   []ParticipantResponse `json:"occupants"`
	Allocations []AllocationResponse  `json:"allocations"`
}

type AllocationResponse struct {
	ID                    string                   `json:"id"`
	EventID               string                   `json:"event_id"`
	ParticipantIDs        []string                 `json:"participant_ids"`
	AccommodationType     entity.AccommodationType `json:"accommodation_type"`
	VendorAccommodationID *string                  `json:"vendor_accommodation_id,omitempty"`
	RoomID                *string                  `json:"room_id,omitempty"`
	RoomType              *entity.RoomType         `json:"room_type,omitempty"`
	CheckInDate           string                   `json:"check_in_date"`
	CheckOutDate          string                   `json:"check_out_date"`
	Status                entity.AllocationStatus  `json:"status"`
	CreatedAt             time.Time                `json:"created_at"`
}

type ValidationReportResponse struct {
	Valid  bool                         `json:"valid"`
	Errors []allocation.ValidationError `json:"errors"`
}

type BulkCheckInResult struct {
	ID     string `json:"id"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type BulkCheckInResponse struct {
	CheckedIn int                 `json:"checked_in"`
	Failed    int                 `json:"failed"`
	Results   []BulkCheckInResult `json:"results"`
}

type SummaryResponse struct {
	EventID string `json:"event_id"`
	allocation.Summary
}

func ParticipantToResponse(p entity.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:      p.ID.String(),
		EventID: p.EventID.String(),
		Name:    p.Name,
		Email:   p.Email,
		Gender:  p.Gender,
	}
}

func VendorToResponse(v entity.VendorAccommodation) VendorResponse {
	return VendorResponse{
		ID:               v.ID.String(),
		VendorName:       v.VendorName,
		Location:         v.Location,
		Capacity:         v.Capacity,
		CurrentOccupants: v.CurrentOccupants,
		Remaining:        allocation.Remaining(allocation.VendorUnit(&v)),
	}
}

func RoomToResponse(r entity.Room) RoomResponse {
	return RoomResponse{
		ID:               r.ID.String(),
		GuesthouseID:     r.GuesthouseID.String(),
		RoomNumber:       r.RoomNumber,
		Capacity:         r.Capacity,
		CurrentOccupants: r.CurrentOccupants,
		Remaining:        allocation.Remaining(allocation.RoomUnit(&r)),
		OccupantGenders:  r.OccupantGenders.Strings(),
	}
}

func AllocationToResponse(a entity.Allocation) AllocationResponse {
	ids := make([]string, len(a.ParticipantIDs))
	for i, id := range a.ParticipantIDs {
		ids[i] = id.String()
	}

	resp := AllocationResponse{
		ID:                a.ID.String(),
		EventID:           a.EventID.String(),
		ParticipantIDs:    ids,
		AccommodationType: a.AccommodationType,
		RoomType:          a.RoomType,
		CheckInDate:       a.CheckInDate.Format("2006-01-02"),
		CheckOutDate:      a.CheckOutDate.Format("2006-01-02"),
		Status:            a.Status,
		CreatedAt:         a.CreatedAt,
	}
	if a.VendorAccommodationID != nil {
		s := a.VendorAccommodationID.String()
		resp.VendorAccommodationID = &s
	}
	if a.RoomID != nil {
		s := a.RoomID.String()
		resp.RoomID = &s
	}
	return resp
}
