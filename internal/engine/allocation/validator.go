package allocation

import (
	"time"

	"event-logistics/internal/data/entity"

	"github.com/google/uuid"
)

// Request is a proposed allocation before submission.
type Request struct {
	EventID        uuid.UUID
	ParticipantIDs []uuid.UUID
	CheckInDate    time.Time
	CheckOutDate   time.Time
	Type           entity.AccommodationType
	VendorID       *uuid.UUID
	RoomIDs        []uuid.UUID
	RoomType       *entity.RoomType
}

// Units are the target units of a request. Rooms keep the selection order.
type Units struct {
	Vendor *entity.VendorAccommodation
	Rooms  []entity.Room
}

type Validator struct {
	loc *time.Location
	now func() time.Time
}

// NewValidator builds a validator whose notion of "today" is taken from now
// in loc. A nil loc means UTC and a nil now means time.Now.
func NewValidator(loc *time.Location, now func() time.Time) *Validator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Validator{loc: loc, now: now}
}

// Validate runs every check and returns all violations at once.
func (v *Validator) Validate(req Request, participants []entity.Participant, units Units) Result {
	var res Result

	v.checkDates(&res, req)

	ids := uniqueIDs(req.ParticipantIDs)
	if len(ids) == 0 {
		res.add(KindNoParticipants, "", "select at least one participant")
	}
	resolved := resolveParticipants(&res, req.EventID, ids, participants)

	rooms := uniqueRooms(units.Rooms)
	switch req.Type {
	case entity.AccommodationVendor:
		checkVendor(&res, req, units.Vendor, resolved, len(ids))
	case entity.AccommodationGuesthouse:
		if len(rooms) == 0 {
			res.add(KindNoRoomsSelected, "", "select at least one room")
		} else if AggregateRemaining(rooms) < len(ids) {
			res.add(KindInsufficientCapacity, "",
				"selected rooms have %d free places for %d participants", AggregateRemaining(rooms), len(ids))
		}
	}

	for _, p := range resolved {
		if !p.Gender.Known() {
			res.add(KindMissingGender, p.ID.String(), "participant %s has no gender on record", p.Name)
		}
	}

	if req.Type == entity.AccommodationGuesthouse && len(rooms) > 0 {
		checkRoomGenders(&res, knownGender(resolved), rooms)
	}

	return res
}

func (v *Validator) checkDates(res *Result, req Request) {
	today := dateOf(v.now(), v.loc)
	checkIn := dateOf(req.CheckInDate, v.loc)
	checkOut := dateOf(req.CheckOutDate, v.loc)

	if checkIn.Before(today) {
		res.add(KindPastCheckIn, "", "check-in date %s is in the past", checkIn.Format(time.DateOnly))
	}
	if !checkOut.After(checkIn) {
		res.add(KindInvalidDateRange, "", "check-out date must be after check-in date")
	}
}

func checkVendor(res *Result, req Request, vendor *entity.VendorAccommodation, resolved []entity.Participant, count int) {
	if req.VendorID == nil || vendor == nil {
		res.add(KindNoVendorSelected, "", "select a vendor accommodation")
	}
	if req.RoomType == nil || *req.RoomType == "" {
		res.add(KindNoRoomType, "", "select a room type")
	} else if *req.RoomType == entity.RoomTypeDouble {
		if count > 2 {
			res.add(KindDoubleRoomOverflow, "", "a double room holds at most 2 participants, got %d", count)
		}
		if len(resolved) == 2 {
			a, b := resolved[0].Gender, resolved[1].Gender
			if a.Known() && b.Known() && (a != b || a == entity.GenderOther) {
				res.add(KindGenderMismatchDouble, "", "a double room requires two participants of the same gender")
			}
		}
	}
	if vendor != nil && !CanFit(VendorUnit(vendor), count) {
		res.add(KindInsufficientCapacity, vendor.ID.String(),
			"%s has %d free places for %d participants", vendor.VendorName, Remaining(VendorUnit(vendor)), count)
	}
}

// checkRoomGenders enforces one gender across the whole request. Occupied
// rooms are fixed facts, so they set the reference gender before any
// participant does.
func checkRoomGenders(res *Result, participants []entity.Participant, rooms []entity.Room) {
	var ref entity.Gender
	for i := range rooms {
		r := &rooms[i]
		if r.CurrentOccupants == 0 || len(r.OccupantGenders) == 0 {
			continue
		}
		switch {
		case ref == "" && len(r.OccupantGenders) == 1:
			ref = r.OccupantGenders.Slice()[0]
		case ref == "" || len(r.OccupantGenders) != 1 || !r.OccupantGenders.Has(ref):
			res.add(KindGenderConflict, r.ID.String(), "room %s occupant genders do not match this request", r.RoomNumber)
		}
	}
	for _, p := range participants {
		if ref == "" {
			ref = p.Gender
			continue
		}
		if p.Gender != ref {
			res.add(KindGenderConflict, p.ID.String(), "participant %s is %s but this request is %s", p.Name, p.Gender, ref)
		}
	}

	placements, _ := place(participants, rooms)
	for _, pl := range placements {
		r := &rooms[pl.room]
		existing := occupantGenders(r)
		if CanCoexist(existing, r.CurrentOccupants, gendersOf(pl.participants), r.Capacity) {
			continue
		}
		flagged := false
		if r.CurrentOccupants > 0 && existing.Has(entity.GenderOther) {
			res.add(KindGenderConflict, r.ID.String(), "room %s already holds an occupant who may not share", r.RoomNumber)
			flagged = true
		}
		for _, p := range pl.participants {
			if p.Gender == entity.GenderOther {
				res.add(KindGenderConflict, p.ID.String(), "participant %s may not share room %s", p.Name, r.RoomNumber)
				flagged = true
			}
		}
		if !flagged {
			res.add(KindGenderConflict, r.ID.String(), "room %s cannot hold this mix of genders", r.RoomNumber)
		}
	}
}

func resolveParticipants(res *Result, eventID uuid.UUID, ids []uuid.UUID, participants []entity.Participant) []entity.Participant {
	byID := make(map[uuid.UUID]entity.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	out := make([]entity.Participant, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			res.add(KindParticipantNotFound, id.String(), "participant %s not found", id)
			continue
		}
		if eventID != uuid.Nil && p.EventID != eventID {
			res.add(KindParticipantEventMismatch, id.String(), "participant %s is registered for another event", p.Name)
			continue
		}
		out = append(out, p)
	}
	return out
}

func occupantGenders(r *entity.Room) entity.GenderSet {
	if r.CurrentOccupants == 0 {
		return entity.GenderSet{}
	}
	return r.OccupantGenders
}

func knownGender(ps []entity.Participant) []entity.Participant {
	out := make([]entity.Participant, 0, len(ps))
	for _, p := range ps {
		if p.Gender.Known() {
			out = append(out, p)
		}
	}
	return out
}

func gendersOf(ps []entity.Participant) []entity.Gender {
	out := make([]entity.Gender, len(ps))
	for i, p := range ps {
		out[i] = p.Gender
	}
	return out
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func uniqueRooms(rooms []entity.Room) []entity.Room {
	seen := make(map[uuid.UUID]struct{}, len(rooms))
	out := make([]entity.Room, 0, len(rooms))
	for _, r := range rooms {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
