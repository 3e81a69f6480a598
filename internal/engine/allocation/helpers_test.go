package allocation

import (
	"time"

	"event-logistics/internal/data/entity"

	"github.com/google/uuid"
)

var (
	fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	eventID  = uuid.MustParse("7f1e1d2c-0000-4000-8000-000000000001")
)

func testValidator() *Validator {
	return NewValidator(time.UTC, func() time.Time { return fixedNow })
}

func day(offset int) time.Time {
	return time.Date(2026, 10, 14+offset, 0, 0, 0, 0, time.UTC)
}

func person(g entity.Gender) entity.Participant {
	id := uuid.New()
	return entity.Participant{ID: id, EventID: eventID, Name: "p-" + id.String()[:6], Gender: g}
}

func room(capacity, occupants int, genders ...entity.Gender) entity.Room {
	id := uuid.New()
	return entity.Room{
		Base:             entity.Base{ID: id},
		RoomNumber:       id.String()[:4],
		Capacity:         capacity,
		CurrentOccupants: occupants,
		OccupantGenders:  entity.NewGenderSet(genders...),
	}
}

func idsOf(ps ...entity.Participant) []uuid.UUID {
	out := make([]uuid.UUID, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func roomIDs(rs ...entity.Room) []uuid.UUID {
	out := make([]uuid.UUID, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func guesthouseRequest(ps []entity.Participant, rs []entity.Room) Request {
	return Request{
		EventID:        eventID,
		ParticipantIDs: idsOf(ps...),
		CheckInDate:    day(1),
		CheckOutDate:   day(3),
		Type:           entity.AccommodationGuesthouse,
		RoomIDs:        roomIDs(rs...),
	}
}

func vendorRequest(ps []entity.Participant, v *entity.VendorAccommodation, rt entity.RoomType) Request {
	req := Request{
		EventID:        eventID,
		ParticipantIDs: idsOf(ps...),
		CheckInDate:    day(0),
		CheckOutDate:   day(2),
		Type:           entity.AccommodationVendor,
	}
	if v != nil {
		id := v.ID
		req.VendorID = &id
	}
	if rt != "" {
		req.RoomType = &rt
	}
	return req
}
