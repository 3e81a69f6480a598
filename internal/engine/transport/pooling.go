package transport

import (
	"sort"
	"time"

	"event-logistics/internal/data/entity"

	"github.com/google/uuid"
)

const DefaultPoolingWindow = 60 * time.Minute

type Candidate struct {
	PickupLocation string
	ScheduledTime  time.Time
	BookingType    entity.BookingType
}

// CandidateOf derives the pooling key of a prepared booking.
func CandidateOf(b entity.TransportBooking) Candidate {
	return Candidate{
		PickupLocation: b.PrimaryPickup(),
		ScheduledTime:  b.ScheduledTime,
		BookingType:    b.BookingType,
	}
}

type Suggestion struct {
	Bookings []entity.TransportBooking
}

// IDs returns the ids of the suggested bookings in suggestion order.
func (s *Suggestion) IDs() []uuid.UUID {
	if s == nil {
		return nil
	}
	ids := make([]uuid.UUID, len(s.Bookings))
	for i, b := range s.Bookings {
		ids[i] = b.ID
	}
	return ids
}

// Poolable reports whether bookings of type t are checked for pooling when
// they are created.
func Poolable(t entity.BookingType) bool {
	return t == entity.BookingTypeAirportPickup || t == entity.BookingTypeEventTransfer
}

// Matches reports whether b could share a ride with c.
func Matches(c Candidate, b entity.TransportBooking, window time.Duration) bool {
	if window <= 0 {
		window = DefaultPoolingWindow
	}
	if b.BookingType != c.BookingType || Terminal(b.Status) {
		return false
	}
	if b.PrimaryPickup() != c.PickupLocation {
		return false
	}
	diff := b.ScheduledTime.Sub(c.ScheduledTime)
	if diff < 0 {
		diff = -diff
	}
	return diff <= window
}

// SuggestPooling returns the existing bookings c could be merged with, or nil
// when there are none. It never merges anything itself.
func SuggestPooling(c Candidate, existing []entity.TransportBooking, window time.Duration) *Suggestion {
	var matched []entity.TransportBooking
	for _, b := range existing {
		if Matches(c, b, window) {
			matched = append(matched, b)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].ScheduledTime.Equal(matched[j].ScheduledTime) {
			return matched[i].ScheduledTime.Before(matched[j].ScheduledTime)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	return &Suggestion{Bookings: matched}
}

// CheckPoolTargets verifies that every requested id was found and would be
// suggested for c.
func CheckPoolTargets(c Candidate, requested []uuid.UUID, found []entity.TransportBooking, window time.Duration) error {
	byID := make(map[uuid.UUID]entity.TransportBooking, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}

	var errs ValidationErrors
	if !Poolable(c.BookingType) {
		errs.add(KindPoolTargetInvalid, "", "%s bookings are not pooled", c.BookingType)
		return errs.orNil()
	}
	for _, id := range requested {
		b, ok := byID[id]
		if !ok {
			errs.add(KindPoolTargetInvalid, id.String(), "booking %s not found", id)
			continue
		}
		if !Matches(c, b, window) {
			errs.add(KindPoolTargetInvalid, id.String(), "booking %s cannot be pooled with this trip", id)
		}
	}
	return errs.orNil()
}
