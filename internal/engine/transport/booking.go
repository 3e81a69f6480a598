package transport

import (
	"slices"
	"strings"

	"event-logistics/internal/data/entity"
)

const DefaultWelcomePackageOffice = "MSF Office"

// Prepare checks a booking draft and normalises it for storage. An airport
// pickup is scheduled at the flight arrival time. When a participant still
// has a welcome package waiting, the office becomes the first stop.
func Prepare(draft entity.TransportBooking, uncollectedPackage bool, office string) (entity.TransportBooking, error) {
	if office == "" {
		office = DefaultWelcomePackageOffice
	}
	var errs ValidationErrors

	if len(draft.ParticipantIDs) == 0 {
		errs.add(KindNoParticipants, "", "select at least one participant")
	}

	switch draft.BookingType {
	case entity.BookingTypeAirportPickup:
		if len(draft.ParticipantIDs) != 1 {
			errs.add(KindAirportSingle, "", "an airport pickup is for exactly one participant, got %d", len(draft.ParticipantIDs))
		}
		if draft.ArrivalTime == nil || draft.ArrivalTime.IsZero() {
			errs.add(KindMissingArrivalTime, "", "an airport pickup needs the flight arrival time")
		} else {
			draft.ScheduledTime = *draft.ArrivalTime
		}
	default:
		if draft.ScheduledTime.IsZero() {
			errs.add(KindMissingScheduledTime, "", "a scheduled time is required")
		}
	}

	if draft.BookingType == entity.BookingTypeEventTransfer && draft.EventID == nil {
		errs.add(KindMissingEvent, "", "an event transfer must reference an event")
	}

	stops := make([]string, 0, len(draft.PickupLocations)+1)
	for _, loc := range draft.PickupLocations {
		stops = append(stops, strings.TrimSpace(loc))
	}
	if len(stops) == 0 {
		errs.add(KindNoPickupLocations, "", "at least one pickup location is required")
	} else if slices.Contains(stops, "") {
		errs.add(KindEmptyPickupLocation, "", "pickup locations must not be blank")
	}

	if err := errs.orNil(); err != nil {
		return draft, err
	}

	if uncollectedPackage {
		if stops[0] != office {
			stops = append([]string{office}, stops...)
		}
		draft.HasWelcomePackage = true
		draft.PackagePickupLocation = &office
	}
	draft.PickupLocations = stops
	draft.Status = entity.BookingStatusPending
	draft.PackageCollected = false
	draft.PoolGroupID = nil
	if draft.VendorType == "" {
		draft.VendorType = entity.VendorTypeAbsolute
	}
	return draft, nil
}
